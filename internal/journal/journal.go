package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const fileSuffix = "-journal.md"

// Journal reads and writes the daily markdown journal files under one
// directory.
type Journal struct {
	dir string
}

// New creates a Journal rooted at dir. Windows-style paths are translated
// to their WSL mount so a path pasted from Explorer still works.
func New(dir string) *Journal {
	return &Journal{dir: TranslatePath(dir)}
}

// TranslatePath converts "C:\Users\..." to "/mnt/c/Users/...". Paths that
// are already POSIX come back unchanged.
func TranslatePath(path string) string {
	if strings.HasPrefix(path, "/mnt/c/") {
		return path
	}
	if strings.HasPrefix(path, `C:\`) {
		path = "/mnt/c/" + strings.TrimPrefix(path, `C:\`)
	}
	return strings.ReplaceAll(path, `\`, "/")
}

// Filename returns the journal file name for the given day,
// e.g. "2024-03-10-journal.md".
func Filename(day time.Time) string {
	return day.Format("2006-01-02") + fileSuffix
}

// LoadToday returns today's journal content, empty when no file exists yet.
func (j *Journal) LoadToday(now time.Time) (string, error) {
	if j.dir == "" {
		return "", nil
	}
	data, err := os.ReadFile(filepath.Join(j.dir, Filename(now)))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read journal: %w", err)
	}
	return string(data), nil
}

// SaveToday writes today's journal content, creating the directory first.
func (j *Journal) SaveToday(now time.Time, content string) error {
	if j.dir == "" {
		return fmt.Errorf("journal path is not configured")
	}
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return fmt.Errorf("create journal directory: %w", err)
	}
	path := filepath.Join(j.dir, Filename(now))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

// WithTimestamp appends a bold clock-time marker on its own line, the way
// the dashboard's "insert time" action does.
func WithTimestamp(content string, now time.Time) string {
	stamp := fmt.Sprintf("\n\n**%s**\n", now.Format("3:04 PM"))
	if content == "" {
		return strings.TrimSpace(stamp)
	}
	return content + stamp
}

// Recent lists journal file names, newest first, capped at limit.
func (j *Journal) Recent(limit int) ([]string, error) {
	if j.dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read journal directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), fileSuffix) {
			names = append(names, entry.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}
