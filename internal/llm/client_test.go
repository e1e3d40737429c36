package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONPlainObject(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, ExtractJSON(`{"a": 1}`))
	assert.Equal(t, `{"a": 1}`, ExtractJSON("  \n{\"a\": 1}\n  "))
}

func TestExtractJSONStripsFences(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, ExtractJSON("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, ExtractJSON("```\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`,
		ExtractJSON("Here is the result:\n```json\n{\"a\": 1}\n```\nLet me know."))
}

func TestExtractJSONTrimsSurroundingProse(t *testing.T) {
	assert.Equal(t, `{"a": {"b": 2}}`,
		ExtractJSON(`The extraction is {"a": {"b": 2}} as requested.`))
}

func TestExtractJSONNoObject(t *testing.T) {
	assert.Equal(t, "no json here", ExtractJSON("  no json here "))
}

func TestNewFromEnvWithoutKey(t *testing.T) {
	t.Setenv("GOVLAYER_TEST_LLM_KEY", "")
	assert.Nil(t, NewFromEnv("GOVLAYER_TEST_LLM_KEY", "model-x", 1024, 0.2))
}

func TestNewFromEnvWithKey(t *testing.T) {
	t.Setenv("GOVLAYER_TEST_LLM_KEY", "sk-test")
	c := NewFromEnv("GOVLAYER_TEST_LLM_KEY", "model-x", 1024, 0.2)
	if assert.NotNil(t, c) {
		assert.Equal(t, "model-x", c.Model())
	}
}
