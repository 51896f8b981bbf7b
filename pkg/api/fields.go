package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// FieldsResponse lists the searchable fields of one entity.
type FieldsResponse struct {
	Entity string   `json:"entity"`
	Fields []string `json:"fields"`
}

// HandleFields handles GET requests for an entity's searchable fields.
func (h *Handler) HandleFields(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entityName := vars["entity"]

	store, ok := h.registry.Get(entityName)
	if !ok {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("unknown entity %q", entityName))
		return
	}

	writeJSON(w, http.StatusOK, FieldsResponse{
		Entity: entityName,
		Fields: store.SearchableFields(),
	})
}
