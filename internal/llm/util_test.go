package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"teams\": []}\n```",
			expected: `{"teams": []}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"teams\": []}\n```",
			expected: `{"teams": []}`,
		},
		{
			name:     "code block with language identifier",
			input:    "```javascript\n{\"teams\": []}\n```",
			expected: `{"teams": []}`,
		},
		{
			name:     "plain JSON passes through",
			input:    `{"teams": []}`,
			expected: `{"teams": []}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n{\"teams\": []}\n  ",
			expected: `{"teams": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestConfig_GetModel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))

	// Unknown tier falls back to standard.
	partial := &Config{Models: map[ModelTier]string{TierStandard: "gemini-2.5-flash"}}
	assert.Equal(t, "gemini-2.5-flash", partial.GetModel(TierAdvanced))

	empty := &Config{}
	assert.Equal(t, "", empty.GetModel(TierAdvanced))
}
