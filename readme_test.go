package anew

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"heading", "# Go CLI\n\nCobra skeleton.\n", "Go CLI"},
		{"heading after paragraph", "Intro text.\n\n## Title\n", "Title"},
		{"paragraph only", "A plain starter\nwith two lines.\n", "A plain starter"},
		{"code is ignored", "```\nnot this\n```\n\nbut this\n", "but this"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractDescription([]byte(tt.source))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribe_MissingReadme(t *testing.T) {
	_, err := Describe(tempDir(t))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDescribe_LowercaseReadme(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "readme.md"), "# lower\n")

	got, err := Describe(dir)
	require.NoError(t, err)
	assert.Equal(t, "lower", got)
}
