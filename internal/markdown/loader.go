package markdown

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/dianliyang/portfolio/pkg/interfaces"
)

const defaultPattern = "*.md"

// LoaderConfig configures how Markdown files are discovered within the content root.
type LoaderConfig struct {
	// DefaultLocale is the only locale allowed to fall back to the legacy
	// flat layout at the content root.
	DefaultLocale string
	// Pattern limits discovered files to names matching the glob (defaults to "*.md").
	Pattern string
	// Times reports file timestamps. Defaults to ModTimeOnly.
	Times FileTimes
}

// Loader resolves locale file sets and turns files into Documents.
type Loader struct {
	fs            fs.FS
	defaultLocale string
	pattern       string
	times         FileTimes
}

// FileSet is the effective list of source files for a locale.
type FileSet struct {
	Locale string
	// Dir is the directory the files were read from, "." for the legacy layout.
	Dir   string
	Files []string
	// Legacy reports whether the default locale fell back to the flat layout.
	Legacy bool
}

// Empty reports whether the set holds no files.
func (s FileSet) Empty() bool {
	return len(s.Files) == 0
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = defaultPattern
	}
	stamps := cfg.Times
	if stamps == nil {
		stamps = ModTimeOnly
	}

	return &Loader{
		fs:            filesystem,
		defaultLocale: strings.TrimSpace(cfg.DefaultLocale),
		pattern:       pattern,
		times:         stamps,
	}
}

// EffectiveFiles returns the locale's dedicated directory when it holds
// Markdown files. Otherwise the default locale falls back to the flat layout
// at the content root and every other locale gets an empty set. A missing
// directory counts as empty; any other filesystem error is returned.
func (l *Loader) EffectiveFiles(ctx context.Context, locale string) (FileSet, error) {
	if err := ctx.Err(); err != nil {
		return FileSet{}, err
	}

	set := FileSet{Locale: locale, Dir: locale}
	if locale == "" {
		return set, errors.New("markdown loader: locale is required")
	}

	files, err := l.markdownFiles(locale)
	if err != nil {
		return FileSet{}, err
	}
	if len(files) > 0 {
		set.Files = files
		return set, nil
	}

	if locale != l.defaultLocale {
		return set, nil
	}

	files, err = l.markdownFiles(".")
	if err != nil {
		return FileSet{}, err
	}
	set.Dir = "."
	set.Files = files
	set.Legacy = true
	return set, nil
}

// LoadFile reads and parses a single Markdown document. name is relative to
// the content root.
func (l *Loader) LoadFile(ctx context.Context, name, locale string) (*DocumentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}

	stamps, err := l.times.Times(l.fs, name)
	if err != nil {
		return nil, err
	}

	doc, err := BuildDocument(name, locale, data, stamps)
	if err != nil {
		return nil, fmt.Errorf("markdown loader %s: %w", name, err)
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]

	return &DocumentResult{
		Document: doc,
		Source:   data,
	}, nil
}

// markdownFiles lists matching regular files directly inside dir, in the
// order fs.ReadDir yields them. Sub-directories are never traversed so locale
// directories stay out of the legacy set.
func (l *Loader) markdownFiles(dir string) ([]string, error) {
	entries, err := fs.ReadDir(l.fs, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("markdown loader read dir %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !l.matchesPattern(entry.Name()) {
			continue
		}
		files = append(files, path.Join(dir, entry.Name()))
	}
	return files, nil
}

func (l *Loader) matchesPattern(name string) bool {
	match, err := path.Match(l.pattern, name)
	if err != nil {
		return false
	}
	return match
}

// DocumentResult carries the parsed document along with the raw source.
type DocumentResult struct {
	Document *interfaces.Document
	Source   []byte
}
