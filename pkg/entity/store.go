package entity

import (
	"reflect"
	"sort"
	"strconv"

	"github.com/searchlite/searchlite/pkg/domain"
)

// resultBuffer sizes the channel used to stream query results.
const resultBuffer = 100

// DefaultPrimaryKey is the reserved identifier field used when no custom
// primary key is configured.
const DefaultPrimaryKey = "_id"

// Store is an in-memory record store and exact-match search engine for one
// entity type. A store is populated by a single Ingest call and queried
// afterwards; there is no update path. Rebuilding means constructing a new
// store.
type Store struct {
	name       string
	primaryKey string

	// primary maps the canonical string form of a record's primary key to
	// the record itself. It is the single source of truth: every record is
	// reachable only through this map.
	primary map[string]domain.Record

	// indexes holds one inverted index per observed field: field name ->
	// field value -> ordered bucket of primary-key values.
	indexes map[string]map[interface{}][]interface{}

	// fields is the union of field names seen across the ingested batch.
	fields map[string]struct{}

	data []domain.Record
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithPrimaryKey overrides the primary-key field.
func WithPrimaryKey(field string) Option {
	return func(s *Store) {
		s.primaryKey = field
	}
}

// NewStore creates an empty store for the named entity type.
func NewStore(name string, options ...Option) *Store {
	store := &Store{
		name:       name,
		primaryKey: DefaultPrimaryKey,
		fields:     make(map[string]struct{}),
		indexes:    make(map[string]map[interface{}][]interface{}),
	}

	for _, option := range options {
		option(store)
	}

	store.primary = make(map[string]domain.Record)
	return store
}

// Name returns the entity name this store holds.
func (s *Store) Name() string { return s.name }

// PrimaryKey returns the configured primary-key field.
func (s *Store) PrimaryKey() string { return s.primaryKey }

// Count returns the number of records held by the store.
func (s *Store) Count() int { return len(s.primary) }

// Search streams every record whose field equals value. Searching the
// primary-key field delegates to primary-key lookup. An unindexed field or
// an unmatched value yields an empty result, never an error. The returned
// channel is finite and not restartable; call Search again to re-iterate.
func (s *Store) Search(field string, value interface{}) <-chan domain.Record {
	if field == s.primaryKey {
		return s.GetByPrimaryKeys(value)
	}

	index, ok := s.indexes[field]
	if !ok {
		return s.streamRecords(nil)
	}

	var keys []interface{}
	if indexable(value) {
		keys = index[value]
	}
	return s.streamRecords(keys)
}

// GetByPrimaryKeys streams the records for the given key or slice of keys.
// Each key is canonicalized to its string form before lookup; keys with no
// match (nil keys included) are silently skipped. Every matched record is an
// independent deep copy, so callers may mutate results freely.
func (s *Store) GetByPrimaryKeys(keys interface{}) <-chan domain.Record {
	return s.streamRecords(normalizeKeys(keys))
}

// SearchableFields returns the sorted field names for which an index exists:
// the observed field set from ingestion plus the primary-key field.
func (s *Store) SearchableFields() []string {
	fields := make([]string, 0, len(s.indexes)+1)
	fields = append(fields, s.primaryKey)
	for field := range s.indexes {
		if field != s.primaryKey {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	return fields
}

// streamRecords lazily yields a deep copy of the record behind each key, in
// key order, skipping keys that resolve to nothing.
func (s *Store) streamRecords(keys []interface{}) <-chan domain.Record {
	out := make(chan domain.Record, resultBuffer)
	go func() {
		defer close(out)
		for _, key := range keys {
			if key == nil {
				continue
			}
			record, ok := s.primary[canonicalKey(key)]
			if !ok {
				continue
			}
			copied, err := deepCopyRecord(record)
			if err != nil {
				continue
			}
			out <- copied
		}
	}()
	return out
}

// normalizeKeys turns a scalar key argument into a one-element slice; slice
// arguments are used in order.
func normalizeKeys(keys interface{}) []interface{} {
	switch k := keys.(type) {
	case nil:
		return nil
	case []interface{}:
		return k
	}

	v := reflect.ValueOf(keys)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		out := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = v.Index(i).Interface()
		}
		return out
	}
	return []interface{}{keys}
}

// canonicalKey formats a primary-key value as its canonical string form.
// Integral floats print without a decimal point, so a JSON-decoded 3 and a
// native int 3 canonicalize identically. Distinct values that format the
// same collide; primary-key uniqueness is enforced on this form.
func canonicalKey(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return stringify(v)
	}
}
