package report

import (
	"context"
	"net/http"
	"strconv"

	"github.com/alfarhan/hr-fleet-management/internal/auth"
	"github.com/alfarhan/hr-fleet-management/internal/transport"
)

type ServiceAPI interface {
	EmployeeRosterPDF(ctx context.Context, actor *auth.User) ([]byte, error)
	EmployeeSalariesExcel(ctx context.Context, actor *auth.User) ([]byte, error)
	ExpiringDocumentsPDF(ctx context.Context, actor *auth.User, windowDays int) ([]byte, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) serveFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) EmployeeRosterPDF(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	data, err := h.Service.EmployeeRosterPDF(r.Context(), user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.serveFile(w, "application/pdf", "employee-roster.pdf", data)
}

func (h *Handler) EmployeeSalariesExcel(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	data, err := h.Service.EmployeeSalariesExcel(r.Context(), user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.serveFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "employee-salaries.xlsx", data)
}

func (h *Handler) ExpiringDocumentsPDF(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	windowDays := 0
	if v := r.URL.Query().Get("window_days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 365 {
			windowDays = n
		}
	}

	data, err := h.Service.ExpiringDocumentsPDF(r.Context(), user, windowDays)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.serveFile(w, "application/pdf", "expiring-documents.pdf", data)
}
