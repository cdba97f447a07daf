package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// prefix tags a history line with the mode it was entered in.
func (m inputMode) prefix() string {
	if m == modeCtrl {
		return "C:"
	}

	return "E:"
}

// parseHistoryLine splits a history file line into its mode and text.
// Lines without a mode prefix are eval entries.
func parseHistoryLine(line string) HistoryEntry {
	for _, mode := range []inputMode{modeEval, modeCtrl} {
		if s, ok := strings.CutPrefix(line, mode.prefix()); ok {
			return HistoryEntry{Line: s, Mode: mode}
		}
	}

	return HistoryEntry{Line: line, Mode: modeEval}
}

// HistoryEntry represents a single history entry with its mode.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

func (e HistoryEntry) String() string { return e.Mode.prefix() + e.Line }

// History is the input history of a REPL persisted to a file, one entry per
// line. A blank path keeps the history in memory only.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory creates a new History instance with the given file path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with those read from the history file. A
// missing file is an empty history.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.entries = append(h.entries, parseHistoryLine(line))
		}
	}

	return scanner.Err()
}

// Add appends line entered in mode. An earlier identical entry is moved to
// the end rather than repeated.
func (h *History) Add(line string, mode inputMode) error {
	entry := HistoryEntry{Line: strings.TrimSpace(line), Mode: mode}
	if entry.Line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	idx := slices.Index(h.entries, entry)

	switch {
	case idx == len(h.entries)-1 && idx >= 0:
		return nil

	case idx >= 0:
		h.entries = append(slices.Delete(h.entries, idx, idx+1), entry)

		return h.rewriteFile()

	default:
		h.entries = append(h.entries, entry)

		return h.appendFile(entry)
	}
}

// GetEntry retrieves a historic entry (line and mode) by index.
// Index 0 is the oldest entry.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns all history entries.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// Must be called with h.mu held.
func (h *History) appendFile(entry HistoryEntry) error {
	if h.path == "" {
		return nil
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(entry.String() + "\n")

	return err
}

// Must be called with h.mu held.
func (h *History) rewriteFile() error {
	if h.path == "" {
		return nil
	}

	var b strings.Builder
	for _, entry := range h.entries {
		b.WriteString(entry.String())
		b.WriteByte('\n')
	}

	return os.WriteFile(h.path, []byte(b.String()), 0o600)
}
