package entity

import (
	"fmt"

	"github.com/searchlite/searchlite/pkg/domain"
)

// NotFoundError indicates that an ingestion path did not resolve to a
// readable file.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such file: %s: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError indicates that a file's contents are not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON in file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// InvalidInputTypeError indicates that an ingestion argument is none of the
// accepted shapes.
type InvalidInputTypeError struct {
	Value interface{}
}

func (e *InvalidInputTypeError) Error() string {
	return fmt.Sprintf("data to ingest should be one of: file path as string, record as map, or a slice of record maps (got %T)", e.Value)
}

// PrimaryKeyMissingError indicates a record without a usable primary key.
type PrimaryKeyMissingError struct {
	Entity     string
	PrimaryKey string
	Record     domain.Record
}

func (e *PrimaryKeyMissingError) Error() string {
	return fmt.Sprintf("cannot find %q in record %v: every %s record must carry %q", e.PrimaryKey, e.Record, e.Entity, e.PrimaryKey)
}

// DuplicatePrimaryKeyError indicates two records whose primary keys share the
// same canonical string form.
type DuplicatePrimaryKeyError struct {
	Entity string
	Key    string
	Value  interface{}
}

func (e *DuplicatePrimaryKeyError) Error() string {
	return fmt.Sprintf("duplicate primary key value %v (canonical %q) in %s records: primary keys must be unique", e.Value, e.Key, e.Entity)
}

// UnhashableValueError indicates a field value that cannot serve as an index
// key. Lists are exempt: they are flattened element by element instead.
type UnhashableValueError struct {
	Field  string
	Value  interface{}
	Record domain.Record
}

func (e *UnhashableValueError) Error() string {
	return fmt.Sprintf("unindexable value %v in field %q for record %v", e.Value, e.Field, e.Record)
}
