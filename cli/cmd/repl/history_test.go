package repl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path)

	assert.NoError(t, h.Load())
	assert.Equal(t, 0, h.Len())

	assert.NoError(t, h.Add("x <- some(1); x", modeEval))
	assert.NoError(t, h.Add("vars", modeCtrl))
	assert.NoError(t, h.Add("  ", modeEval))
	assert.NoError(t, h.Add("vars", modeCtrl))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "E:x <- some(1); x\nC:vars\n", string(data))

	// An earlier duplicate moves to the end.
	assert.NoError(t, h.Add("x <- some(1); x", modeEval))

	data, err = os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "C:vars\nE:x <- some(1); x\n", string(data))

	// The same text in another mode is a separate entry.
	assert.NoError(t, h.Add("vars", modeEval))
	assert.Equal(t, 3, h.Len())

	loaded := NewHistory(path)
	assert.NoError(t, loaded.Load())
	assert.Equal(t, h.Entries(), loaded.Entries())

	entry, err := loaded.GetEntry(0)
	assert.NoError(t, err)
	assert.Equal(t, HistoryEntry{Line: "vars", Mode: modeCtrl}, entry)

	_, err = loaded.GetEntry(3)
	assert.IsError(t, err, ErrOutOfBounds)
}

func TestHistory_LegacyLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	assert.NoError(t, os.WriteFile(path, []byte("plain\n\nC:quit\n"), 0o600))

	h := NewHistory(path)
	assert.NoError(t, h.Load())
	assert.Equal(t, []HistoryEntry{
		{Line: "plain", Mode: modeEval},
		{Line: "quit", Mode: modeCtrl},
	}, h.Entries())
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("")
	assert.NoError(t, h.Load())
	assert.NoError(t, h.Add("a", modeEval))
	assert.Equal(t, 1, h.Len())
}
