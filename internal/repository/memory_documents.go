package repository

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryDocumentStore is an in-memory DocumentStore. The core never decides
// the storage medium, so tests (and single-process deployments that don't
// want a database) can swap it in for the SQL repository.
type MemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]json.RawMessage
}

// NewMemoryDocumentStore creates an empty in-memory document store
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{
		docs: make(map[string]map[string]json.RawMessage),
	}
}

func (s *MemoryDocumentStore) Get(collection, key string) (json.RawMessage, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[collection][key]
	if !ok {
		return nil, false, nil
	}
	return doc, true, nil
}

func (s *MemoryDocumentStore) Set(collection, key string, doc interface{}, merge bool) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if merge {
		if existing, ok := s.docs[collection][key]; ok {
			var current, incoming map[string]interface{}
			if json.Unmarshal(existing, &current) == nil && json.Unmarshal(body, &incoming) == nil {
				for k, v := range incoming {
					current[k] = v
				}
				if merged, err := json.Marshal(current); err == nil {
					body = merged
				}
			}
		}
	}

	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string]json.RawMessage)
	}
	s.docs[collection][key] = body
	return nil
}

func (s *MemoryDocumentStore) Update(collection, key string, partial map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.docs[collection][key]
	if !ok {
		return ErrDocumentNotFound
	}

	var current map[string]interface{}
	if err := json.Unmarshal(existing, &current); err != nil {
		return fmt.Errorf("stored document is not an object: %w", err)
	}
	for k, v := range partial {
		current[k] = v
	}

	body, err := json.Marshal(current)
	if err != nil {
		return err
	}
	s.docs[collection][key] = body
	return nil
}

func (s *MemoryDocumentStore) Delete(collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs[collection], key)
	return nil
}

func (s *MemoryDocumentStore) DeleteCollection(collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, collection)
	return nil
}

func (s *MemoryDocumentStore) Keys(collection string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.docs[collection]))
	for k := range s.docs[collection] {
		keys = append(keys, k)
	}
	return keys, nil
}
