package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsChannelID(t *testing.T) {
	assert.True(t, IsChannelID("UCBJycsmduvYEL83R_U4JriQ"))
	assert.False(t, IsChannelID("UCshort"))
	assert.False(t, IsChannelID("mkbhd"))
	assert.False(t, IsChannelID("XXBJycsmduvYEL83R_U4JriQ"))
}

func TestExtractCandidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "channel URL",
			input: "https://www.youtube.com/channel/UCBJycsmduvYEL83R_U4JriQ",
			want:  "UCBJycsmduvYEL83R_U4JriQ",
		},
		{
			name:  "handle URL",
			input: "https://www.youtube.com/@mkbhd",
			want:  "mkbhd",
		},
		{
			name:  "handle URL with trailing path",
			input: "https://www.youtube.com/@mkbhd/videos",
			want:  "mkbhd",
		},
		{
			name:  "custom URL",
			input: "https://www.youtube.com/c/mkbhd",
			want:  "mkbhd",
		},
		{
			name:  "legacy user URL",
			input: "https://www.youtube.com/user/marquesbrownlee",
			want:  "marquesbrownlee",
		},
		{
			name:  "scheme-less handle URL",
			input: "youtube.com/@mkbhd",
			want:  "mkbhd",
		},
		{
			name:  "scheme-less custom URL",
			input: "www.youtube.com/c/mkbhd",
			want:  "mkbhd",
		},
		{
			name:  "bare channel ID",
			input: "UCBJycsmduvYEL83R_U4JriQ",
			want:  "UCBJycsmduvYEL83R_U4JriQ",
		},
		{
			name:  "bare handle",
			input: "mkbhd",
			want:  "mkbhd",
		},
		{
			name:  "padded input",
			input: "  mkbhd \n",
			want:  "mkbhd",
		},
		{
			name:  "unrecognized path shape",
			input: "https://www.youtube.com/watch?v=abc123",
			want:  "",
		},
		{
			name:  "empty",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCandidate(tt.input))
		})
	}
}
