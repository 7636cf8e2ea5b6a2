package anew

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var readmeNames = []string{"README.md", "readme.md", "README.markdown"}

// Describe returns a one-line description of the template stored in dir,
// taken from the first heading, or failing that the first paragraph, of its
// README. It returns an os.ErrNotExist error when there is no README.
func Describe(dir string) (string, error) {
	for _, name := range readmeNames {
		source, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		return ExtractDescription(source)
	}
	return "", os.ErrNotExist
}

func ExtractDescription(source []byte) (string, error) {
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var heading, paragraph string
	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			if heading == "" {
				heading = blockFirstLine(n, source)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if paragraph == "" {
				paragraph = blockFirstLine(n, source)
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return "", err
	}

	if heading != "" {
		return heading, nil
	}
	return paragraph, nil
}

func blockFirstLine(n ast.Node, source []byte) string {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		if s := strings.TrimSpace(string(line.Value(source))); s != "" {
			return s
		}
	}
	return ""
}
