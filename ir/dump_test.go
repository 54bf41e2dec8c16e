package ir

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestDumpYAML(t *testing.T) {
	assert := assert.New(t)

	prog, err := (&Translator{}).ParseBytes([]byte("+++[>+<-]>.[-],[->++<]"))
	assert.NoError(err)

	var out bytes.Buffer
	err = prog.DumpYAML(&out)
	assert.NoError(err)

	assert.Contains(out.String(), "targets: [{offset: 1, amount: 2}]")

	var generic map[string]any
	assert.NoError(yaml.Unmarshal(out.Bytes(), &generic))

	expected := map[string]any{
		"routine": []any{
			map[string]any{"inc": 3},
			map[string]any{"loop": []any{
				map[string]any{"seek": 1},
				map[string]any{"inc": 1},
				map[string]any{"seek": -1},
				map[string]any{"inc": -1},
			}},
			map[string]any{"seek": 1},
			map[string]any{"output": nil},
			map[string]any{"zero": nil},
			map[string]any{"input": nil},
			map[string]any{"addzero": map[string]any{
				"step": 1,
				"targets": []any{
					map[string]any{"offset": 1, "amount": 2},
				},
			}},
		},
	}
	assert.Equal(expected, generic)
}

func TestOpMarshalYAML(t *testing.T) {
	assert := assert.New(t)

	op := MakeLoop(MakeInc(2), MakeAddAndZero(1, Target{1, 3}))
	value, err := op.MarshalYAML()
	assert.NoError(err)

	node, ok := value.(*yaml.Node)
	assert.True(ok)
	if !ok {
		return
	}

	assert.Equal(yaml.MappingNode, node.Kind)
	assert.Equal("loop", node.Content[0].Value)

	body := node.Content[1]
	assert.Equal(2, len(body.Content))
	assert.Equal("inc", body.Content[0].Content[0].Value)
	assert.Equal("2", body.Content[0].Content[1].Value)
	assert.Equal("addzero", body.Content[1].Content[0].Value)
}
