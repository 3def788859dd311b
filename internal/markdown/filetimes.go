package markdown

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/djherbis/times"
)

// Timestamps carries the creation and modification instants of a source file.
type Timestamps struct {
	Created  time.Time
	Modified time.Time
}

// FileTimes reports timestamps for a path relative to the content root.
type FileTimes interface {
	Times(fsys fs.FS, name string) (Timestamps, error)
}

// FileTimesFunc adapts a function to FileTimes.
type FileTimesFunc func(fsys fs.FS, name string) (Timestamps, error)

// Times implements FileTimes.
func (f FileTimesFunc) Times(fsys fs.FS, name string) (Timestamps, error) {
	return f(fsys, name)
}

// OSFileTimes reads birth times from the host filesystem rooted at Root.
// Platforms or filesystems without birth time support report the
// modification time as the creation time.
type OSFileTimes struct {
	Root string
}

// Times implements FileTimes.
func (o OSFileTimes) Times(_ fs.FS, name string) (Timestamps, error) {
	path := filepath.Join(o.Root, filepath.FromSlash(name))
	ts, err := times.Stat(path)
	if err != nil {
		return Timestamps{}, fmt.Errorf("markdown stat times %s: %w", name, err)
	}

	stamps := Timestamps{
		Created:  ts.ModTime(),
		Modified: ts.ModTime(),
	}
	if ts.HasBirthTime() {
		stamps.Created = ts.BirthTime()
	}
	return stamps, nil
}

// ModTimeOnly uses fs.Stat and reports the modification time for both
// fields. It is the fallback for stores that are not backed by the host
// filesystem (embed.FS, fstest.MapFS).
var ModTimeOnly FileTimes = FileTimesFunc(func(fsys fs.FS, name string) (Timestamps, error) {
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return Timestamps{}, fmt.Errorf("markdown stat %s: %w", name, err)
	}
	return Timestamps{
		Created:  info.ModTime(),
		Modified: info.ModTime(),
	}, nil
})
