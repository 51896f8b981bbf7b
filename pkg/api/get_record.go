package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// HandleGetRecord handles GET requests for a single record by primary key.
// Keys are matched on their canonical string form, so /records/1 finds a
// record whose key was ingested as the number 1.
func (h *Handler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entityName := vars["entity"]
	key := vars["key"]

	store, ok := h.registry.Get(entityName)
	if !ok {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("unknown entity %q", entityName))
		return
	}

	for record := range store.GetByPrimaryKeys(key) {
		h.logger.Info("record retrieved",
			zap.String("entity", entityName),
			zap.String("key", key),
		)
		writeJSON(w, http.StatusOK, record)
		return
	}

	writeJSONError(w, http.StatusNotFound, fmt.Sprintf("no %s record with %s %q", entityName, store.PrimaryKey(), key))
}
