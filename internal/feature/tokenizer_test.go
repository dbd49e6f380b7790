package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits on non-alphanumeric",
			text: "Hello, World! foo-bar_baz",
			want: []string{"hello", "world", "foo", "bar", "baz"},
		},
		{
			name: "drops single-character tokens",
			text: "a b cd e fg",
			want: []string{"cd", "fg"},
		},
		{
			name: "keeps digits",
			text: "route 66 zip 90210",
			want: []string{"route", "66", "zip", "90210"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "only separators",
			text: "!!! --- ...",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}
