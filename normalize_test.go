package anew

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func p(s string) string { return filepath.FromSlash(s) }

func TestNormalize_StripsCurrentDir(t *testing.T) {
	rel, err := Normalize(p("/a/b"), []string{p("/a/b/x.txt"), p("/a/b/sub/y.txt")})
	require.NoError(t, err)
	assert.Equal(t, []string{"x.txt", p("sub/y.txt")}, rel)
}

func TestNormalize_FallsBackToCommonAncestor(t *testing.T) {
	rel, err := Normalize(p("/z"), []string{p("/a/b/x.txt"), p("/a/c/y.txt")})
	require.NoError(t, err)
	assert.Equal(t, []string{p("b/x.txt"), p("c/y.txt")}, rel)
}

func TestNormalize_FallbackIsDecidedForWholeBatch(t *testing.T) {
	rel, err := Normalize(p("/a/b"), []string{p("/a/b/x.txt"), p("/a/c/y.txt")})
	require.NoError(t, err)
	assert.Equal(t, []string{p("b/x.txt"), p("c/y.txt")}, rel)
}

func TestNormalize_KeepsInputOrder(t *testing.T) {
	rel, err := Normalize(p("/w"), []string{p("/w/z.txt"), p("/w/a.txt"), p("/w/m/n.txt")})
	require.NoError(t, err)
	assert.Equal(t, []string{"z.txt", "a.txt", p("m/n.txt")}, rel)
}

func TestNormalize_PrefixMatchesWholeComponents(t *testing.T) {
	rel, err := Normalize(p("/a/b"), []string{p("/a/bc/x.txt"), p("/a/bc/y.txt")})
	require.NoError(t, err)
	assert.Equal(t, []string{"x.txt", "y.txt"}, rel)
}

func TestNormalize_SourceEqualToCurrentDir(t *testing.T) {
	rel, err := Normalize(p("/w"), []string{p("/w"), p("/w/a.txt")})
	require.NoError(t, err)
	assert.Equal(t, []string{".", "a.txt"}, rel)
}

func TestNormalize_SingleFileOutsideCurrentDir(t *testing.T) {
	rel, err := Normalize(p("/z"), []string{p("/a/b/x.txt")})
	require.NoError(t, err)
	assert.Equal(t, []string{"."}, rel)
}

func TestNormalize_Empty(t *testing.T) {
	_, err := Normalize(p("/z"), nil)
	assert.ErrorIs(t, err, ErrEmptyFileSet)
}

func TestNormalize_RelativeWithoutCommonAncestor(t *testing.T) {
	_, err := Normalize(p("/z"), []string{p("a/x"), p("b/y")})
	assert.ErrorIs(t, err, ErrNoCommonAncestor)
}

func TestGreatestCommonAncestor(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{"siblings", []string{p("/a/b/x"), p("/a/b/y")}, p("/a/b")},
		{"cousins", []string{p("/a/b/x"), p("/a/c/y")}, p("/a")},
		{"disjoint", []string{p("/x/1"), p("/y/2")}, p("/")},
		{"nested", []string{p("/a/b"), p("/a/b/c/d")}, p("/a/b")},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GreatestCommonAncestor(tt.paths))
		})
	}
}

func TestAncestors(t *testing.T) {
	assert.Equal(t, []string{p("/a/b"), p("/a"), p("/")}, Ancestors(p("/a/b/")))
}
