// Package testutil provides shared test helpers for databases and recognizers.
package testutil

import (
	"os"
	"testing"

	"github.com/BenjaminIrwin/scatexparser/internal/history"
	"github.com/BenjaminIrwin/scatexparser/internal/recognize"
)

// TestDB creates a temporary SQLite history database that is automatically
// cleaned up.
func TestDB(t *testing.T) *history.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "scatex-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := history.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestRecognizer builds a recognizer for the given locales, defaulting to
// English.
func TestRecognizer(t *testing.T, languages ...string) *recognize.Recognizer {
	t.Helper()
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	r, err := recognize.New(languages)
	if err != nil {
		t.Fatal(err)
	}
	return r
}
