package anew

// Mode selects how create places source paths into a template.
type Mode int

const (
	ModeCopy Mode = iota
	ModeLink
)

func (m Mode) String() string {
	if m == ModeLink {
		return "link"
	}
	return "copy"
}

// Entry pairs an absolute source path with its template-relative form.
type Entry struct {
	Source   string
	Relative string
}

type Summary struct {
	Created     []string
	Overwritten []string
	Linked      []string
	Directories []string
	Message     string
}

// TemplateInfo describes one stored template for long listings.
type TemplateInfo struct {
	Name        string `json:"name"`
	Dir         string `json:"dir"`
	Entries     int    `json:"entries"`
	Description string `json:"description,omitempty"`
}
