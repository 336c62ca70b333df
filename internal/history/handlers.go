package history

import (
	"encoding/json"
	"net/http"

	"pennygain/internal/handlers"
	"pennygain/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ExportFilename is the attachment name for history downloads.
const ExportFilename = "investment-calculations.json"

// Handler serves the history endpoints over the store.
type Handler struct {
	Store *Store
}

// RegisterRoutes mounts the history endpoints onto the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/history", func(r chi.Router) {
		r.Get("/", h.List)
		r.Delete("/", h.Clear)
		r.Get("/export", h.Export)
	})
}

// List handles GET /api/history.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.Store.Entries()
	if entries == nil {
		entries = []Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string][]Entry{"history": entries})
}

// Clear handles DELETE /api/history.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	h.Store.Clear()

	observability.LoggerWithTrace(r.Context()).Info("history cleared",
		zap.String("request_id", observability.RequestIDFromContext(r.Context())),
	)

	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /api/history/export: the full sequence as a JSON
// attachment, field-for-field identical to the in-memory representation.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	b, err := h.Store.Export()
	if err != nil {
		observability.LoggerWithTrace(r.Context()).Error("history export failed", zap.Error(err))
		handlers.WriteError(w, http.StatusInternalServerError, "Failed to export history")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
