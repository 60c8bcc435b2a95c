package session

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/docconnect/docconnect/internal"
	sessionmodel "github.com/docconnect/docconnect/internal/core/datamodel/session"
	"github.com/docconnect/docconnect/internal/transport"
	"github.com/docconnect/docconnect/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateSessionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.CreateSession(r.Context(), identity.UserID, dto)
	if err != nil {
		h.Logger.Error("session creation failed", "error", err, "doctor_id", dto.DoctorID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "missing session id")
		return
	}

	chatSession, err := h.Service.GetSession(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToView(chatSession))
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	var (
		sessions []*sessionmodel.ChatSession
		total    int64
		err      error
	)
	if identity.IsDoctor() {
		sessions, total, err = h.Service.ListForDoctor(r.Context(), identity.UserID, page, perPage)
	} else {
		sessions, total, err = h.Service.ListForPatient(r.Context(), identity.UserID, page, perPage)
	}
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	page, perPage = normalizePage(page, perPage)
	views := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, ToView(s))
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{
		Sessions: views,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	})
}
