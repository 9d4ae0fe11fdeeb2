package database

import "github.com/tidwall/buntdb"

// NewEmbeddedDB opens the buntdb document store used by the embedded driver.
// Pass ":memory:" for a throwaway instance (tests, demos).
func NewEmbeddedDB(path string) (*buntdb.DB, error) {
	return buntdb.Open(path)
}
