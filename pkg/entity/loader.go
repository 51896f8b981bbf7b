package entity

import (
	"encoding/json"
	"os"

	"github.com/searchlite/searchlite/pkg/domain"
)

// Ingest loads records into the store and builds all indexes. The source is
// one of: a file path to a JSON document, a single record, or a slice of
// records. A store supports exactly one Ingest call; after a failed call the
// store must be discarded and rebuilt.
func (s *Store) Ingest(source interface{}) error {
	batch, err := s.normalizeSource(source)
	if err != nil {
		return err
	}

	s.data = append(s.data, batch...)
	return s.buildIndexes(batch)
}

// normalizeSource resolves the accepted input shapes to a flat batch of
// records in source order.
func (s *Store) normalizeSource(source interface{}) ([]domain.Record, error) {
	switch src := source.(type) {
	case string:
		return s.loadRecordsFile(src)
	case domain.Record:
		return []domain.Record{src}, nil
	case map[string]interface{}:
		return []domain.Record{src}, nil
	case []domain.Record:
		return src, nil
	case []map[string]interface{}:
		batch := make([]domain.Record, len(src))
		for i, record := range src {
			batch[i] = record
		}
		return batch, nil
	case []interface{}:
		return recordSlice(src)
	default:
		return nil, &InvalidInputTypeError{Value: source}
	}
}

// loadRecordsFile reads and parses a JSON file holding either a single
// record or an array of records.
func (s *Store) loadRecordsFile(path string) ([]domain.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}

	var parsed interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	switch doc := parsed.(type) {
	case map[string]interface{}:
		return []domain.Record{doc}, nil
	case []interface{}:
		return recordSlice(doc)
	default:
		return nil, &InvalidInputTypeError{Value: parsed}
	}
}

// recordSlice converts a generic slice to records, rejecting non-map
// elements.
func recordSlice(src []interface{}) ([]domain.Record, error) {
	batch := make([]domain.Record, 0, len(src))
	for _, element := range src {
		switch record := element.(type) {
		case domain.Record:
			batch = append(batch, record)
		case map[string]interface{}:
			batch = append(batch, record)
		default:
			return nil, &InvalidInputTypeError{Value: element}
		}
	}
	return batch, nil
}
