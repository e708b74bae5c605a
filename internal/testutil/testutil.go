// Package testutil provides shared test helpers for building content corpora.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/credenda/internal/models"
	"github.com/starford/credenda/internal/storage"
)

// TestContent creates a temporary content directory with a storage.FS.
func TestContent(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// WriteRaw writes body verbatim as the document for key.
func WriteRaw(t *testing.T, dir, key string, body []byte) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(key)+storage.Ext)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, body, 0o644); err != nil {
		t.Fatal(err)
	}
}

// WriteJSON marshals v and writes it as the document for key.
func WriteJSON(t *testing.T, dir, key string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	WriteRaw(t, dir, key, data)
}

// WriteArticles writes every article plus a matching articles/index.
func WriteArticles(t *testing.T, dir string, articles ...models.Article) {
	t.Helper()
	index := make([]models.ArticleIndexEntry, 0, len(articles))
	for _, a := range articles {
		WriteJSON(t, dir, "articles/"+itoa(a.Number), a)
		index = append(index, models.ArticleIndexEntry{Number: a.Number, Title: a.Title})
	}
	WriteJSON(t, dir, "articles/index", index)
}

// WriteService writes a daily office service under id.
func WriteService(t *testing.T, dir, id string, s models.DailyService) {
	t.Helper()
	WriteJSON(t, dir, "daily-office/"+id, s)
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
