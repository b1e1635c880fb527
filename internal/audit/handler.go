package audit

import (
	"net/http"
	"strconv"

	"github.com/alfarhan/hr-fleet-management/internal/auth"
	"github.com/alfarhan/hr-fleet-management/internal/transport"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Recorder *Recorder
}

func NewHandler(baseHandler *transport.BaseHandler, recorder *Recorder) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Recorder:    recorder,
	}
}

// EntityHistory returns the trail for one entity, newest first.
func (h *Handler) EntityHistory(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	entityID, err := strconv.ParseInt(chi.URLParam(r, "entityID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid entity id")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	records, err := h.Recorder.History(r.Context(), entityType, entityID, limit)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"total":   len(records),
	})
}

// CompanyTrail returns the paginated trail for the actor's company.
func (h *Handler) CompanyTrail(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user.CompanyID == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := 50, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	records, err := h.Recorder.CompanyTrail(r.Context(), *user.CompanyID, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"total":   len(records),
	})
}
