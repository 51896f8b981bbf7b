package entity

import (
	"fmt"
	"reflect"

	"github.com/searchlite/searchlite/pkg/domain"
)

// buildIndexes validates and indexes a batch of records in source order.
//
// The build runs in two passes. The first collects the observed field set:
// the union of field names across the whole batch. The second indexes every
// record against that full set, so a record lacking a field observed
// elsewhere still contributes a default "" entry to that field's index.
//
// A validation failure aborts the build and leaves already-mutated indexes
// behind; a store whose ingestion failed must be discarded.
func (s *Store) buildIndexes(batch []domain.Record) error {
	if len(batch) == 0 {
		return nil
	}

	for _, record := range batch {
		for field := range record {
			s.fields[field] = struct{}{}
		}
	}

	for _, record := range batch {
		if err := s.indexRecord(record); err != nil {
			return err
		}
	}
	return nil
}

// indexRecord contributes one record to the primary index and to every
// observed field's inverted index.
func (s *Store) indexRecord(record domain.Record) error {
	if value, ok := record[s.primaryKey]; !ok || value == nil {
		return &PrimaryKeyMissingError{Entity: s.name, PrimaryKey: s.primaryKey, Record: record}
	}
	pkValue := record[s.primaryKey]

	for field := range s.fields {
		value, ok := record[field]
		if !ok {
			value = ""
		}

		switch {
		case field == s.primaryKey:
			key := canonicalKey(value)
			if _, exists := s.primary[key]; exists {
				return &DuplicatePrimaryKeyError{Entity: s.name, Key: key, Value: value}
			}
			s.primary[key] = record

		case isSequence(value):
			if err := s.indexSequence(record, field, value, pkValue); err != nil {
				return err
			}

		case !indexable(value):
			return &UnhashableValueError{Field: field, Value: value, Record: record}

		default:
			s.appendPosting(field, value, pkValue)
		}
	}
	return nil
}

// indexSequence flattens a list-valued field: an empty list indexes the
// single value "", a non-empty list indexes each element separately, all
// pointing at the same primary key.
func (s *Store) indexSequence(record domain.Record, field string, value, pkValue interface{}) error {
	seq := reflect.ValueOf(value)
	if seq.Len() == 0 {
		s.appendPosting(field, "", pkValue)
		return nil
	}
	for i := 0; i < seq.Len(); i++ {
		element := seq.Index(i).Interface()
		if !indexable(element) {
			return &UnhashableValueError{Field: field, Value: element, Record: record}
		}
		s.appendPosting(field, element, pkValue)
	}
	return nil
}

// appendPosting appends a primary-key value to the bucket for a field value,
// creating the bucket or the whole field index as needed. Buckets preserve
// insertion order and allow duplicates.
func (s *Store) appendPosting(field string, value, pkValue interface{}) {
	index, ok := s.indexes[field]
	if !ok {
		index = make(map[interface{}][]interface{})
		s.indexes[field] = index
	}
	index[value] = append(index[value], pkValue)
}

// isSequence reports whether a field value gets flattening treatment rather
// than direct indexing. Strings are scalars, not sequences.
func isSequence(value interface{}) bool {
	if value == nil {
		return false
	}
	kind := reflect.TypeOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// indexable reports whether a value can serve as a key in a Go map. Nested
// maps and other non-comparable types cannot.
func indexable(value interface{}) bool {
	if value == nil {
		return true
	}
	return reflect.TypeOf(value).Comparable()
}

func stringify(value interface{}) string {
	return fmt.Sprintf("%v", value)
}
