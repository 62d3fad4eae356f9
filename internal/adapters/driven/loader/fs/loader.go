// Package fs imports pages from a directory of markup files, with an
// optional watch mode that re-imports files as they change.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/custodia-labs/redline/internal/core/domain"
	"github.com/custodia-labs/redline/internal/core/ports/driven"
	"github.com/custodia-labs/redline/internal/logger"
	"github.com/custodia-labs/redline/internal/revision"
)

// importedExtensions are the file types treated as page markup.
var importedExtensions = map[string]bool{
	".html": true,
	".htm":  true,
	".txt":  true,
}

// Loader imports markup files as pages.
type Loader struct {
	pages driven.PageStore
}

// NewLoader creates a loader writing into the given store.
func NewLoader(pages driven.PageStore) *Loader {
	return &Loader{pages: pages}
}

// ImportDir imports every recognised file directly under dir, ordered
// by filename. Returns the number of pages written.
func (l *Loader) ImportDir(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !importedExtensions[filepath.Ext(entry.Name())] {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	count := 0
	for order, name := range names {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		if err := l.importFile(ctx, dir, name, order); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Watch re-imports files under dir as they are created or written.
// Blocks until ctx is cancelled.
func (l *Loader) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Info("Watching %s for page changes", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Base(event.Name)
			if !importedExtensions[filepath.Ext(name)] {
				continue
			}
			logger.Debug("Re-importing %s", name)
			if err := l.importFile(ctx, dir, name, 0); err != nil {
				logger.Warn("Import %s: %v", name, err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// importFile upserts one file as a page. The page ID is derived from
// the file path so re-imports update the same page.
func (l *Loader) importFile(ctx context.Context, dir, name string, order int) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+path)).String()
	now := time.Now()

	page := domain.Page{
		ID:        id,
		TextID:    filepath.Base(dir),
		Order:     order,
		Title:     titleFromFilename(name),
		Content:   string(data),
		Revision:  revision.Of(string(data)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Preserve creation time and position on re-import.
	if existing, err := l.pages.Get(ctx, id); err == nil {
		page.CreatedAt = existing.CreatedAt
		page.Order = existing.Order
		page.Version = existing.Version
		page.ImageURL = existing.ImageURL
	}

	if err := l.pages.Save(ctx, &page); err != nil {
		return fmt.Errorf("saving page: %w", err)
	}
	return nil
}

// titleFromFilename turns "chapter_01-intro.html" into "chapter 01 intro".
func titleFromFilename(name string) string {
	title := strings.TrimSuffix(name, filepath.Ext(name))
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.ReplaceAll(title, "-", " ")
	return title
}
