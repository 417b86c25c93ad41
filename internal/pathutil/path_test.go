package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "."},
		{in: ".", want: "."},
		{in: "/", want: "."},
		{in: "./docs/", want: "docs"},
		{in: "src//pkg/../main.go", want: "src/main.go"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.in), "Clean(%q)", tt.in)
	}
}

func TestDirPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", DirPrefix("."))
	assert.Equal(t, "", DirPrefix(""))
	assert.Equal(t, "docs/", DirPrefix("docs"))
	assert.Equal(t, "docs/", DirPrefix("docs/"))
}
