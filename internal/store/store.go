package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names backed by the document store.
const (
	CollectionProfiles = "profiles"
	CollectionJobs     = "jobs"
)

// ErrNotFound is returned when no document exists for a collection/id pair.
var ErrNotFound = errors.New("document not found")

// Store is a generic, schema-less JSON document collection keyed by resource
// type. Documents are opaque to the store beyond their top-level fields.
type Store struct {
	db *sql.DB
}

// New creates a Store over an already-migrated database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get retrieves a single document by ID.
func (s *Store) Get(collection, id string) (json.RawMessage, error) {
	var data []byte
	row := s.db.QueryRow("SELECT data FROM documents WHERE collection = ? AND id = ?", collection, id)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
		}
		return nil, err
	}
	return data, nil
}

// List retrieves every document in a collection in insertion order.
func (s *Store) List(collection string) ([]json.RawMessage, error) {
	rows, err := s.db.Query("SELECT data FROM documents WHERE collection = ? ORDER BY rowid", collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		docs = append(docs, data)
	}
	return docs, rows.Err()
}

// FindEqual retrieves all documents whose top-level field equals value.
func (s *Store) FindEqual(collection, field string, value any) ([]json.RawMessage, error) {
	rows, err := s.db.Query(
		"SELECT data FROM documents WHERE collection = ? AND json_extract(data, '$.' || ?) = ? ORDER BY rowid",
		collection, field, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		docs = append(docs, data)
	}
	return docs, rows.Err()
}

// Put inserts or fully replaces a document.
func (s *Store) Put(collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", collection, id, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		collection, id, string(data))
	return err
}

// Merge applies a shallow top-level merge of patch onto an existing document
// and returns the merged result. Fields absent from the patch are preserved.
func (s *Store) Merge(collection, id string, patch map[string]any) (json.RawMessage, error) {
	current, err := s.Get(collection, id)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(current, &doc); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	for k, v := range patch {
		doc[k] = v
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		"UPDATE documents SET data = ?, updated_at = CURRENT_TIMESTAMP WHERE collection = ? AND id = ?",
		string(data), collection, id)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (s *Store) Delete(collection, id string) error {
	_, err := s.db.Exec("DELETE FROM documents WHERE collection = ? AND id = ?", collection, id)
	return err
}

// Export returns every collection with its documents, for snapshots.
func (s *Store) Export() (map[string][]json.RawMessage, error) {
	rows, err := s.db.Query("SELECT collection, data FROM documents ORDER BY collection, rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]json.RawMessage)
	for rows.Next() {
		var collection string
		var data []byte
		if err := rows.Scan(&collection, &data); err != nil {
			return nil, err
		}
		out[collection] = append(out[collection], data)
	}
	return out, rows.Err()
}
