package anew

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	createdStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	linkedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dirStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
)

type spinner struct {
	frames []string
	index  int
}

func newSpinner() spinner { return spinner{frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}} }
func (s *spinner) tick() { s.index = (s.index + 1) % len(s.frames) }
func (s spinner) View() string { return s.frames[s.index] }

// TUI renders progress for one create or apply while it runs.
type TUI struct {
	app         *App
	out         io.Writer
	noAnimation bool
	spinner     spinner
	mu          sync.Mutex
	cur, total  int
}

func NewTUI(app *App, out io.Writer, noAnimation bool) *TUI {
	return &TUI{app: app, out: out, noAnimation: noAnimation, spinner: newSpinner()}
}

func (t *TUI) Run(label string, op func() (Summary, error)) (Summary, error) {
	if t.noAnimation {
		return op()
	}

	t.app.SetProgressCallback(func(c, tot int) {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.cur, t.total = c, tot
	})
	defer t.app.SetProgressCallback(nil)

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for {
			select {
			case <-done:
				return
			case <-time.After(100 * time.Millisecond):
				t.spinner.tick()
				t.renderProgress(label)
			}
		}
	}()

	summary, err := op()
	close(done)
	<-stopped
	fmt.Fprint(t.out, "\r\x1b[K")
	return summary, err
}

func (t *TUI) renderProgress(label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.total > 0 {
		fmt.Fprintf(t.out, "\r%s %s... %d/%d\x1b[K", t.spinner.View(), label, t.cur, t.total)
		return
	}
	fmt.Fprintf(t.out, "\r%s %s... %d\x1b[K", t.spinner.View(), label, t.cur)
}

// FormatSummary lists the paths of s relative to base where possible.
func FormatSummary(s Summary, base string) string {
	var b strings.Builder
	if s.Message != "" {
		b.WriteString(headerStyle.Render(s.Message) + "\n\n")
	}

	renderList := func(title string, style lipgloss.Style, list []string) {
		if len(list) == 0 {
			return
		}
		b.WriteString(style.Render(title) + "\n")
		for _, f := range list {
			b.WriteString(fmt.Sprintf("  %s\n", relativeTo(base, f)))
		}
	}

	renderList("Directories:", dirStyle, s.Directories)
	renderList("Created:", createdStyle, s.Created)
	renderList("Linked:", linkedStyle, s.Linked)
	renderList("Overwritten:", warnStyle, s.Overwritten)

	return b.String()
}

func FormatTemplateList(names []string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("* All Templates:") + "\n")
	for _, n := range names {
		b.WriteString("  -" + nameStyle.Render(n) + "\n")
	}
	return b.String()
}

func relativeTo(base, p string) string {
	if base == "" {
		return p
	}
	if r, err := filepath.Rel(base, p); err == nil && !strings.HasPrefix(r, "..") {
		return r
	}
	return p
}
