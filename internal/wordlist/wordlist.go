package wordlist

import (
	"bufio"
	"errors"
	"os"
	"strings"
	"sync"
)

// List is an ordered, de-duplicated set of entries backed by a line-oriented file.
// Entries are kept verbatim, leading and trailing spaces included, so " go " is a
// different keyword from "go". Blank lines and lines starting with '#' are ignored.
type List struct {
	mu    sync.RWMutex
	items []string
	seen  map[string]bool
	path  string
}

// Load reads the list at path. A missing file yields an empty list that Add will create.
func Load(path string) (*List, error) {
	l := &List{
		seen: make(map[string]bool),
		path: path,
	}
	if err := l.load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return l, nil
}

func (l *List) load() error {
	file, err := os.Open(l.path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if skip(line) {
			continue
		}
		l.insert(line)
	}
	return scanner.Err()
}

func skip(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

func (l *List) insert(value string) bool {
	if l.seen[value] {
		return false
	}
	l.seen[value] = true
	l.items = append(l.items, value)
	return true
}

// Items returns a copy of the entries in file order.
func (l *List) Items() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.items...)
}

func (l *List) Contains(value string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.seen[value]
}

// Add appends value to the list and persists it to disk. Existing, blank and comment values
// are ignored, as are values spanning lines.
func (l *List) Add(value string) error {
	if skip(value) || strings.ContainsAny(value, "\r\n") {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.seen[value] {
		return nil
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(value + "\n"); err != nil {
		return err
	}
	l.insert(value)
	return nil
}
