package api

import (
	"net/http"
)

// EntityInfo describes one loaded entity type.
type EntityInfo struct {
	Name       string `json:"name"`
	PrimaryKey string `json:"primary_key"`
	Count      int    `json:"count"`
}

// HandleListEntities handles GET requests for the loaded entity types.
func (h *Handler) HandleListEntities(w http.ResponseWriter, r *http.Request) {
	names := h.registry.Entities()

	entities := make([]EntityInfo, 0, len(names))
	for _, name := range names {
		store, ok := h.registry.Get(name)
		if !ok {
			continue
		}
		entities = append(entities, EntityInfo{
			Name:       store.Name(),
			PrimaryKey: store.PrimaryKey(),
			Count:      store.Count(),
		})
	}

	writeJSON(w, http.StatusOK, entities)
}
