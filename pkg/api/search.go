package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/searchlite/searchlite/pkg/domain"
	"github.com/searchlite/searchlite/pkg/registry"
)

// SearchResponse is the JSON body of a successful search.
type SearchResponse struct {
	Entity  string          `json:"entity"`
	Field   string          `json:"field"`
	Value   interface{}     `json:"value"`
	Count   int             `json:"count"`
	Results []domain.Record `json:"results"`
}

// HandleSearch handles GET requests for field-based exact-match search.
// The value parameter may be empty: records lacking the field are indexed
// under "" and match an empty value.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entityName := vars["entity"]

	query := r.URL.Query()
	field := query.Get("field")
	if field == "" {
		writeJSONError(w, http.StatusBadRequest, "missing required query parameter: field")
		return
	}
	value := registry.CoerceQueryTerm(query.Get("value"))

	results, err := h.registry.Search(entityName, field, value)
	if err != nil {
		h.logger.Warn("search against unknown entity",
			zap.String("entity", entityName),
			zap.Error(err),
		)
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	h.logger.Info("search completed",
		zap.String("entity", entityName),
		zap.String("field", field),
		zap.Any("value", value),
		zap.Int("count", len(results)),
	)

	if results == nil {
		results = []domain.Record{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		Entity:  entityName,
		Field:   field,
		Value:   value,
		Count:   len(results),
		Results: results,
	})
}
