package anew

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// SourceProvider supplies a FILES list when none is given on the command
// line: piped stdin wins, the clipboard is the fallback.
type SourceProvider struct {
	stdin *os.File
}

func NewSourceProvider() *SourceProvider {
	return &SourceProvider{stdin: os.Stdin}
}

func (sp *SourceProvider) GetContent() (string, error) {
	stat, err := sp.stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		c, err := io.ReadAll(sp.stdin)
		if err != nil {
			return "", err
		}
		return string(c), nil
	}

	c, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(c), nil
}

func (sp *SourceProvider) GetPaths() ([]string, error) {
	c, err := sp.GetContent()
	if err != nil {
		return nil, err
	}
	return ParsePathList(c), nil
}

// ParsePathList splits content into one path or pattern per line, dropping
// blank lines and # comments.
func ParsePathList(content string) []string {
	var paths []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	return paths
}
