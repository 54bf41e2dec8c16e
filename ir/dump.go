package ir

import (
	"io"

	"gopkg.in/yaml.v3"
)

// yamlNode builds the YAML form of an op: one mapping per op, keyed by kind.
func (op *Op) yamlNode() (node *yaml.Node, err error) {
	node = &yaml.Node{Kind: yaml.MappingNode}

	key := &yaml.Node{Kind: yaml.ScalarNode, Value: op.Kind.String()}

	var value *yaml.Node
	switch op.Kind {
	case OP_ROUTINE:
		if op.Cond {
			key.Value = "loop"
		}
		value = &yaml.Node{Kind: yaml.SequenceNode}
		for n := range op.Ops {
			var child *yaml.Node
			child, err = op.Ops[n].yamlNode()
			if err != nil {
				return
			}
			value.Content = append(value.Content, child)
		}
	case OP_SEEK, OP_INC:
		value = &yaml.Node{}
		err = value.Encode(op.Amount)
	case OP_ADD_AND_ZERO:
		value = &yaml.Node{}
		err = value.Encode(struct {
			Step    int      `yaml:"step"`
			Targets []Target `yaml:"targets,flow"`
		}{op.Step, op.Targets})
	default:
		value = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}
	}

	if err != nil {
		return
	}

	node.Content = []*yaml.Node{key, value}
	return
}

// MarshalYAML implements yaml.Marshaler.
func (op Op) MarshalYAML() (any, error) {
	return op.yamlNode()
}

// DumpYAML writes the program tree as YAML.
func (prog *Program) DumpYAML(out io.Writer) (err error) {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)

	err = enc.Encode(&prog.Root)
	if err != nil {
		return
	}

	return enc.Close()
}
