// Package capture maintains the library of scoreboard screenshots saved
// from chat attachments.
package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/model"
)

// Library is a directory of captured scoreboard images. File names double
// as match ids ("{messageID}-{attachmentName}"), which embeds the recency
// key the aggregation layer orders by.
type Library struct {
	dir  string
	http *http.Client
}

// NewLibrary returns a library rooted at dir. The directory is created
// lazily on the first save.
func NewLibrary(dir string) *Library {
	return &Library{
		dir:  dir,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Dir returns the library directory.
func (l *Library) Dir() string { return l.dir }

// Path returns the on-disk location for an attachment of a message.
func (l *Library) Path(messageID, attachmentName string) string {
	return filepath.Join(l.dir, model.MatchID(messageID, attachmentName))
}

// Save downloads an attachment into the library and returns its path.
// Saving an attachment that is already present is a no-op, so repeated
// reactions on the same message never re-download.
func (l *Library) Save(ctx context.Context, messageID, attachmentName, url string) (string, error) {
	path := l.Path(messageID, attachmentName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("create images dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download attachment: HTTP %d", resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return path, nil
}

// Remove deletes a previously captured attachment. Removing one that was
// never captured is not an error.
func (l *Library) Remove(messageID, attachmentName string) error {
	err := os.Remove(l.Path(messageID, attachmentName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove capture: %w", err)
	}
	return nil
}

// List returns the captured image file names sorted by name. Only png and
// jpeg files are candidates for processing; a missing library directory
// means no captures yet.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read images dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
