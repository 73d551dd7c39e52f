package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pokedex/internal/database"
)

// ErrDocumentNotFound is returned by Update when the target document is absent
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore is the key-value/document contract the cache and the
// trainer-facing repositories are written against. Collections scope keys,
// so per-user data lives under per-user collection paths.
type DocumentStore interface {
	// Get returns the stored document, or found=false if absent
	Get(collection, key string) (json.RawMessage, bool, error)

	// Set stores doc under collection/key. With merge, top-level fields of
	// an existing JSON object are preserved unless overwritten; without it
	// the document is replaced wholesale.
	Set(collection, key string, doc interface{}, merge bool) error

	// Update applies partial to an existing document and fails with
	// ErrDocumentNotFound when there is nothing to update
	Update(collection, key string, partial map[string]interface{}) error

	// Delete removes one document; deleting an absent document is not an error
	Delete(collection, key string) error

	// DeleteCollection removes every document in a collection
	DeleteCollection(collection string) error

	// Keys lists the keys present in a collection
	Keys(collection string) ([]string, error)
}

// DocumentRepository is the SQL-backed DocumentStore. Documents are JSON
// bodies in a single table keyed by (collection, doc_key).
type DocumentRepository struct {
	db *database.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *database.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Get(collection, key string) (json.RawMessage, bool, error) {
	var body string
	err := r.db.QueryRow(
		"SELECT body FROM documents WHERE collection = ? AND doc_key = ?",
		collection, key,
	).Scan(&body)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return json.RawMessage(body), true, nil
}

func (r *DocumentRepository) Set(collection, key string, doc interface{}, merge bool) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if merge {
		if merged, ok, err := r.mergeExisting(collection, key, body); err != nil {
			return err
		} else if ok {
			body = merged
		}
	}

	_, err = r.db.Exec(r.db.Dialect.UpsertDocument(), collection, key, string(body))
	return err
}

// mergeExisting overlays the new body's top-level fields onto the stored
// document. Only object documents merge; anything else is replaced.
func (r *DocumentRepository) mergeExisting(collection, key string, body []byte) (json.RawMessage, bool, error) {
	existing, found, err := r.Get(collection, key)
	if err != nil || !found {
		return nil, false, err
	}

	var current map[string]interface{}
	if err := json.Unmarshal(existing, &current); err != nil {
		return nil, false, nil
	}
	var incoming map[string]interface{}
	if err := json.Unmarshal(body, &incoming); err != nil {
		return nil, false, nil
	}

	for k, v := range incoming {
		current[k] = v
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode merged document: %w", err)
	}
	return merged, true, nil
}

func (r *DocumentRepository) Update(collection, key string, partial map[string]interface{}) error {
	existing, found, err := r.Get(collection, key)
	if err != nil {
		return err
	}
	if !found {
		return ErrDocumentNotFound
	}

	var current map[string]interface{}
	if err := json.Unmarshal(existing, &current); err != nil {
		return fmt.Errorf("stored document is not an object: %w", err)
	}

	for k, v := range partial {
		current[k] = v
	}

	return r.Set(collection, key, current, false)
}

func (r *DocumentRepository) Delete(collection, key string) error {
	_, err := r.db.Exec(
		"DELETE FROM documents WHERE collection = ? AND doc_key = ?",
		collection, key,
	)
	return err
}

func (r *DocumentRepository) DeleteCollection(collection string) error {
	_, err := r.db.Exec("DELETE FROM documents WHERE collection = ?", collection)
	return err
}

func (r *DocumentRepository) Keys(collection string) ([]string, error) {
	rows, err := r.db.Query(
		"SELECT doc_key FROM documents WHERE collection = ? ORDER BY updated_at DESC",
		collection,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
