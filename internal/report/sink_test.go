package report

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kapu/ytsearch/internal/domain"
	apperrors "github.com/kapu/ytsearch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingStore struct {
	err error
}

func (f failingStore) Save(name string, _ []byte) (string, error) {
	return name, f.err
}

var fixedNow = time.Date(2024, 3, 5, 7, 8, 9, 0, time.Local)

func sampleRecords() []domain.FormattedRecord {
	return []domain.FormattedRecord{
		{Title: "one", PublishedAt: "2024年01月01日 09時00分", Channel: "c", Views: "1", Likes: "2", Comments: "3", Tags: "タグなし"},
		{Title: "two", PublishedAt: "2024年01月02日 09時00分", Channel: "c", Views: "4", Likes: "5", Comments: "6", Tags: "a, b"},
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "search_results_20240305_070809.txt", FileName(fixedNow))
}

func TestEmitWritesConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	sink := NewSink(&console, NewFileStore(dir), zap.NewNop())
	sink.now = func() time.Time { return fixedNow }

	path, err := sink.Emit(domain.NewSearchQuery([]string{"foo", "bar"}), sampleRecords(), true)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "search_results_20240305_070809.txt"), path)
	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, console.String(), string(saved))

	out := console.String()
	assert.Equal(t, 1, strings.Count(out, "検索キーワード: foo bar"))
	assert.Equal(t, 2, strings.Count(out, "タイトル: "))
	assert.Equal(t, 4, strings.Count(out, "---\n"))
}

func TestEmitWithoutPersist(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	sink := NewSink(&console, NewFileStore(dir), zap.NewNop())

	path, err := sink.Emit(domain.NewSearchQuery([]string{"foo"}), sampleRecords(), false)

	require.NoError(t, err)
	assert.Empty(t, path)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Contains(t, console.String(), "タイトル: two")
}

func TestEmitSaveFailureKeepsConsoleOutput(t *testing.T) {
	var console bytes.Buffer
	sink := NewSink(&console, failingStore{err: fs.ErrPermission}, zap.NewNop())

	_, err := sink.Emit(domain.NewSearchQuery([]string{"foo"}), sampleRecords(), true)

	require.Error(t, err)
	var ioErr *apperrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Equal(t, 2, strings.Count(console.String(), "タイトル: "))
}

func TestFileStoreMissingDirectory(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing"))

	_, err := store.Save("report.txt", []byte("x"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
