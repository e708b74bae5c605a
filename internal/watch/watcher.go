// Package watch turns filesystem changes under the content root into
// content-key notifications.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/starford/credenda/internal/content"
	"github.com/starford/credenda/internal/storage"
)

// Callback is called once per effective document change. kind is one of
// the content.Kind* constants; key is the content key.
type Callback func(kind, key string)

// Watch starts an fsnotify watcher on the content root and processes
// events until ctx is cancelled.
//
// Writes that leave a document's bytes unchanged are suppressed by
// content hash. Removals and renames report the old key so hosts re-render
// and observe the not-found placeholder. Directories created at runtime
// are added to the watch list.
func Watch(ctx context.Context, store *storage.FS, logger *slog.Logger, cb Callback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	root := store.Root()
	sums := make(map[string]uint64)
	if err := addDirsRecursive(w, root, store, sums); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root), slog.Int("documents", len(sums)))

	notify := func(key string) {
		kind, ok := content.ClassifyKey(key)
		if !ok {
			logger.Debug("watcher: ignoring key", slog.String("key", key))
			return
		}
		if cb != nil {
			cb(kind, key)
		}
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					before := len(sums)
					if addErr := addDirsRecursive(w, ev.Name, store, sums); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
						continue
					}
					logger.Debug("watcher: watching new dir",
						slog.String("path", ev.Name),
						slog.Int("documents", len(sums)-before))
					_ = walkDocuments(ev.Name, store, func(key string, _ uint64) { notify(key) })
					continue
				}
			}

			key, ok := store.KeyForPath(ev.Name)
			if !ok {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				data, readErr := os.ReadFile(ev.Name)
				if readErr != nil {
					logger.Warn("watcher: read failed", slog.String("key", key), slog.String("error", readErr.Error()))
					continue
				}
				sum := xxhash.Sum64(data)
				if old, seen := sums[key]; seen && old == sum {
					continue
				}
				sums[key] = sum
				logger.Debug("watcher: changed", slog.String("key", key))
				notify(key)

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				// Rename fires on the old path; the new path arrives as Create.
				if _, known := sums[key]; !known {
					continue
				}
				delete(sums, key)
				logger.Debug("watcher: removed", slog.String("key", key))
				notify(key)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher and
// records the content hash of every document found.
func addDirsRecursive(w *fsnotify.Watcher, root string, store *storage.FS, sums map[string]uint64) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return walkDocuments(root, store, func(key string, sum uint64) { sums[key] = sum })
}

// walkDocuments calls fn with the key and content hash of each document under dir.
func walkDocuments(dir string, store *storage.FS, fn func(key string, sum uint64)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		key, ok := store.KeyForPath(path)
		if !ok {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		fn(key, xxhash.Sum64(data))
		return nil
	})
}
