package company

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/alfarhan/hr-fleet-management/internal/auth"
	"github.com/alfarhan/hr-fleet-management/internal/entitlement"
	"github.com/alfarhan/hr-fleet-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, actor *auth.User) ([]*Company, error)
	Get(ctx context.Context, actor *auth.User, id int64) (*Company, error)
	Create(ctx context.Context, actor *auth.User, dto CreateCompanyDTO) (*Company, error)
	Suspend(ctx context.Context, actor *auth.User, id int64) (*Company, error)
	Activate(ctx context.Context, actor *auth.User, id int64) (*Company, error)
	ExtendTrial(ctx context.Context, actor *auth.User, id int64, dto ExtendTrialDTO) (*Company, error)
	ChangePlan(ctx context.Context, actor *auth.User, id int64, dto ChangePlanDTO) (*Company, error)
	OverrideLimits(ctx context.Context, actor *auth.User, id int64, dto OverrideLimitsDTO) (*Company, error)
	Usage(ctx context.Context, actor *auth.User, id int64) (*entitlement.Usage, error)
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

func (h *Handler) companyID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	companies, err := h.Service.List(r.Context(), user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CompanyListResponse{Companies: companies, Total: len(companies)})
}

func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.companyID(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	c, err := h.Service.Get(r.Context(), user, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateCompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Create(r.Context(), user, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) SuspendCompany(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, func(ctx context.Context, user *auth.User, id int64) (*Company, error) {
		return h.Service.Suspend(ctx, user, id)
	})
}

func (h *Handler) ActivateCompany(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, func(ctx context.Context, user *auth.User, id int64) (*Company, error) {
		return h.Service.Activate(ctx, user, id)
	})
}

func (h *Handler) ExtendTrial(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.companyID(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	var dto ExtendTrialDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.ExtendTrial(r.Context(), user, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) ChangePlan(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.companyID(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	var dto ChangePlanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.ChangePlan(r.Context(), user, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) OverrideLimits(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.companyID(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	var dto OverrideLimitsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.OverrideLimits(r.Context(), user, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) CompanyUsage(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.companyID(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	usage, err := h.Service.Usage(r.Context(), user, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, usage)
}

func (h *Handler) runTransition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, user *auth.User, id int64) (*Company, error)) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.companyID(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	c, err := fn(r.Context(), user, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}
