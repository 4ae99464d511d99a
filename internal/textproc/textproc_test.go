package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase and strip punctuation",
			input:    "Senior Go Developer (Backend)!",
			expected: "senior go developer backend",
		},
		{
			name:     "stopwords removed",
			input:    "I have been working with the team on a large system",
			expected: "working team large system",
		},
		{
			name:     "digits preserved",
			input:    "5 years of Kubernetes",
			expected: "5 years kubernetes",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   \n\t  ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestRemoveSensitiveInfo(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bias words removed whole-word",
			input:    "John, male, married, lives in Boston",
			expected: "John, , , lives in Boston",
		},
		{
			name:     "case insensitive",
			input:    "FEMALE engineer",
			expected: "engineer",
		},
		{
			name:     "partial words untouched",
			input:    "malevolent whiteboard blacksmith",
			expected: "malevolent whiteboard blacksmith",
		},
		{
			name:     "whitespace collapsed",
			input:    "a   male   b",
			expected: "a b",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RemoveSensitiveInfo(tt.input))
		})
	}
}

func TestFixBrokenWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "letter-digit boundary",
			input:    "september2011",
			expected: "september 2011",
		},
		{
			name:     "digit-letter boundary",
			input:    "2011newbrunswick",
			expected: "2011 newbrunswick",
		},
		{
			name:     "month glued to word",
			input:    "newbrunswickjanuary",
			expected: "newbrunswick january",
		},
		{
			name:     "short month form splits first",
			input:    "torontoseptember",
			expected: "toronto september",
		},
		{
			name:     "whitespace collapsed",
			input:    "  a \n b\t\tc ",
			expected: "a b c",
		},
		{
			name:     "combined",
			input:    "worked atacme2015currently",
			expected: "worked atacme 2015 currently",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FixBrokenWords(tt.input))
		})
	}
}
