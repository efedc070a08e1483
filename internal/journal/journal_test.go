package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslatePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`C:\Users\ada\Journal`, "/mnt/c/Users/ada/Journal"},
		{"/mnt/c/Users/ada/Journal", "/mnt/c/Users/ada/Journal"},
		{"/home/ada/journal", "/home/ada/journal"},
		{`relative\sub`, "relative/sub"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TranslatePath(tt.in), "input %q", tt.in)
	}
}

func TestFilename(t *testing.T) {
	day := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-10-journal.md", Filename(day))
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	j := New(dir)
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	content, err := j.LoadToday(now)
	require.NoError(t, err)
	assert.Empty(t, content, "no file yet means an empty journal, not an error")

	require.NoError(t, j.SaveToday(now, "# Morning\nnotes\n"))

	content, err = j.LoadToday(now)
	require.NoError(t, err)
	assert.Equal(t, "# Morning\nnotes\n", content)
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "journal")
	j := New(dir)
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, j.SaveToday(now, "hello"))
	_, err := os.Stat(filepath.Join(dir, "2024-03-10-journal.md"))
	assert.NoError(t, err)
}

func TestSaveWithoutPath(t *testing.T) {
	j := New("")
	assert.Error(t, j.SaveToday(time.Now(), "content"))
}

func TestWithTimestamp(t *testing.T) {
	at := time.Date(2024, 3, 10, 14, 5, 0, 0, time.UTC)

	assert.Equal(t, "**2:05 PM**", WithTimestamp("", at))
	assert.Equal(t, "notes\n\n**2:05 PM**\n", WithTimestamp("notes", at))
}

func TestRecent(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"2024-03-04-journal.md",
		"2024-03-05-journal.md",
		"2024-03-06-journal.md",
		"2024-03-07-journal.md",
		"2024-03-08-journal.md",
		"2024-03-09-journal.md",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	// Non-journal files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	recent, err := New(dir).Recent(5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "2024-03-09-journal.md", recent[0], "newest first")
	assert.Equal(t, "2024-03-05-journal.md", recent[4])
}
