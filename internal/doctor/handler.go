package doctor

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/docconnect/docconnect/internal"
	"github.com/docconnect/docconnect/internal/transport"
	"github.com/docconnect/docconnect/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// ListDoctors is the public discovery endpoint.
func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := ListFilter{
		SpecializationID: q.Get("specialization_id"),
		LocationState:    q.Get("state"),
		OnlineOnly:       q.Get("online") == "true",
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.PerPage, _ = strconv.Atoi(q.Get("per_page"))
	if v := q.Get("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPriceNaira = &f
		}
	}
	if v := q.Get("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPriceNaira = &f
		}
	}

	doctors, total, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	filter.Normalize()
	views := make([]DoctorView, 0, len(doctors))
	for _, d := range doctors {
		views = append(views, ToView(d))
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{
		Data:    views,
		Count:   total,
		Page:    filter.Page,
		PerPage: filter.PerPage,
	})
}

func (h *Handler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "doctorID")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "missing doctor id")
		return
	}

	doc, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToView(doc))
}

// ListBanks proxies the gateway's settlement bank list for payout onboarding.
func (h *Handler) ListBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.Service.ListBanks(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"banks": banks})
}

func (h *Handler) ResolveBankAccount(w http.ResponseWriter, r *http.Request) {
	var dto ResolveBankAccountDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.Service.ResolveBankAccount(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, account)
}

func (h *Handler) CreatePayoutSubaccount(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateSubaccountDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.Service.CreatePayoutSubaccount(r.Context(), identity.UserID, dto)
	if err != nil {
		h.Logger.Error("payout subaccount creation failed", "error", err, "user_id", identity.UserID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, sub)
}

func (h *Handler) SetRates(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SetRatesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.Service.SetRates(r.Context(), identity.UserID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ToView(doc))
}
