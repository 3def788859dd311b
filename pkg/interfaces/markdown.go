package interfaces

import "time"

// MarkdownParser converts raw Markdown bytes into HTML. Implementations must be
// safe to reuse across calls and produce the same output for the same input.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering. Extension names match the keys
// accepted in configuration ("gfm", "table", "footnote", ...).
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// Document is a Markdown source file split into frontmatter and body.
type Document struct {
	// FilePath is slash separated and relative to the content root.
	FilePath    string
	Locale      string
	FrontMatter FrontMatter
	Body        []byte
	// CreatedAt is the file birth time, or the modification time on
	// filesystems that do not record one.
	CreatedAt    time.Time
	LastModified time.Time
	Checksum     []byte
}

// FrontMatter holds the metadata header recognised on blog posts. Unknown
// keys are preserved in Raw.
type FrontMatter struct {
	Title   string `yaml:"title" json:"title"`
	Excerpt string `yaml:"excerpt" json:"excerpt"`
	Slug    string `yaml:"slug" json:"slug"`
	// UpdatedAt carries the raw override as written in the header. Dates
	// decoded by YAML are formatted as YYYY-MM-DD.
	UpdatedAt string         `yaml:"updatedAt" json:"updatedAt"`
	Raw       map[string]any `yaml:"-" json:"raw"`
}
