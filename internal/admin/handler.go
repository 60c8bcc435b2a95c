package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"

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

// VerifyDoctor records an admin decision on a doctor's verification request.
func (h *Handler) VerifyDoctor(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto VerifyDoctorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.VerifyDoctor(r.Context(), identity.UserID, dto)
	if err != nil {
		h.Logger.Error("doctor verification failed", "error", err, "doctor_id", dto.DoctorProfileID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
