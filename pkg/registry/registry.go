package registry

import (
	"encoding/json"
	"fmt"

	"github.com/searchlite/searchlite/pkg/config"
	"github.com/searchlite/searchlite/pkg/domain"
	"github.com/searchlite/searchlite/pkg/entity"
)

// Relation links a field of one entity to the primary key of another.
type Relation struct {
	From string
	Via  string
	To   string
}

// Registry holds one built entity store per entity type and resolves
// cross-entity relations between them.
type Registry struct {
	stores    map[string]*entity.Store
	order     []string
	relations []Relation
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		stores: make(map[string]*entity.Store),
	}
}

// LoadFromConfig builds a store per configured entity, ingests its data file
// and registers the configured relations.
func LoadFromConfig(cfg *config.Config) (*Registry, error) {
	reg := New()

	for _, ent := range cfg.Entities {
		var options []entity.Option
		if ent.PrimaryKey != "" {
			options = append(options, entity.WithPrimaryKey(ent.PrimaryKey))
		}

		store := entity.NewStore(ent.Name, options...)
		if err := store.Ingest(ent.File); err != nil {
			return nil, fmt.Errorf("failed to load entity %q: %w", ent.Name, err)
		}
		if err := reg.Add(store); err != nil {
			return nil, err
		}
	}

	for _, rel := range cfg.Relations {
		if err := reg.AddRelation(Relation{From: rel.FromEntity, Via: rel.ViaField, To: rel.ToEntity}); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Add registers a built store under its entity name.
func (r *Registry) Add(store *entity.Store) error {
	if _, exists := r.stores[store.Name()]; exists {
		return fmt.Errorf("entity %q is already registered", store.Name())
	}
	r.stores[store.Name()] = store
	r.order = append(r.order, store.Name())
	return nil
}

// AddRelation registers a cross-entity relation. Both ends must name
// registered entities.
func (r *Registry) AddRelation(rel Relation) error {
	if _, ok := r.stores[rel.From]; !ok {
		return fmt.Errorf("relation references unknown entity %q", rel.From)
	}
	if _, ok := r.stores[rel.To]; !ok {
		return fmt.Errorf("relation references unknown entity %q", rel.To)
	}
	r.relations = append(r.relations, rel)
	return nil
}

// Get returns the store for an entity name.
func (r *Registry) Get(name string) (*entity.Store, bool) {
	store, ok := r.stores[name]
	return store, ok
}

// Entities returns the registered entity names in registration order.
func (r *Registry) Entities() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Search collects all records of the named entity whose field equals value.
func (r *Registry) Search(name, field string, value interface{}) ([]domain.Record, error) {
	store, ok := r.stores[name]
	if !ok {
		return nil, fmt.Errorf("unknown entity %q", name)
	}

	var results []domain.Record
	for record := range store.Search(field, value) {
		results = append(results, record)
	}
	return results, nil
}

// RelatedSet holds the records one relation resolves to for a given record.
type RelatedSet struct {
	Relation Relation
	Records  []domain.Record
}

// Related resolves every relation departing from the named entity for one of
// its records, e.g. the user a ticket's assignee_id points at. Relations
// whose via field is absent or unmatched resolve to an empty set.
func (r *Registry) Related(name string, record domain.Record) []RelatedSet {
	var sets []RelatedSet
	for _, rel := range r.relations {
		if rel.From != name {
			continue
		}
		target := r.stores[rel.To]

		var records []domain.Record
		if key, ok := record[rel.Via]; ok {
			for related := range target.GetByPrimaryKeys(key) {
				records = append(records, related)
			}
		}
		sets = append(sets, RelatedSet{Relation: rel, Records: records})
	}
	return sets
}

// CoerceQueryTerm turns a raw query term into the typed value it would have
// after JSON decoding, so "1" matches a numeric field and "true" a boolean
// one. Anything else is searched as a plain string.
func CoerceQueryTerm(raw string) interface{} {
	var value interface{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	switch value.(type) {
	case float64, bool, nil:
		return value
	default:
		return raw
	}
}

// SearchableFields returns the searchable fields of every registered entity,
// keyed by entity name.
func (r *Registry) SearchableFields() map[string][]string {
	fields := make(map[string][]string, len(r.stores))
	for name, store := range r.stores {
		fields[name] = store.SearchableFields()
	}
	return fields
}
