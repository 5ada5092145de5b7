package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/odysseus0/rssfeed/internal/logger"
)

// Store is the append-only list of tracked feed URLs, persisted as a text
// file with one URL per line. It is not safe for concurrent use.
type Store struct {
	path string
	urls []string
}

// Open loads the URL file at path. A missing file yields an empty store.
// On any other read error the returned store is empty but usable and the
// error is returned alongside it.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	urls, err := readURLs(path)
	if err != nil {
		logger.Debugf("[store] load %s failed: %v", path, err)
		return s, fmt.Errorf("load urls: %w", err)
	}
	s.urls = urls
	logger.Debugf("[store] loaded %d url(s) from %s", len(urls), path)
	return s, nil
}

func readURLs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var urls []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

func (s *Store) Path() string {
	return s.path
}

// URLs returns a copy of the tracked URLs in file order.
func (s *Store) URLs() []string {
	out := make([]string, len(s.urls))
	copy(out, s.urls)
	return out
}

func (s *Store) Len() int {
	return len(s.urls)
}

func (s *Store) Contains(url string) bool {
	for _, u := range s.urls {
		if u == url {
			return true
		}
	}
	return false
}

// Append persists url as a new line and then records it in memory. The
// in-memory list is only changed when the write succeeds; a partial write
// is left on disk as is.
func (s *Store) Append(url string) error {
	if url == "" {
		return fmt.Errorf("%w: url cannot be empty", ErrInvalidInput)
	}
	if strings.ContainsAny(url, "\r\n") {
		return fmt.Errorf("%w: url must be a single line", ErrInvalidInput)
	}
	if s.Contains(url) {
		return fmt.Errorf("%s: %w", url, ErrDuplicate)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create url dir: %w", err)
		}
	}
	line := url + "\n"
	if missingTrailingNewline(s.path) {
		line = "\n" + line
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open url file: %w", err)
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("write url file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close url file: %w", err)
	}

	s.urls = append(s.urls, url)
	logger.Debugf("[store] appended %s to %s", url, s.path)
	return nil
}

func missingTrailingNewline(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.Size() == 0 {
		return false
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false
	}
	return last[0] != '\n'
}
