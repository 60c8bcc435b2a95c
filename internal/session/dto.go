package session

import (
	"time"

	errors "github.com/docconnect/docconnect/internal"
	"github.com/docconnect/docconnect/internal/core/common/validation"
	sessionmodel "github.com/docconnect/docconnect/internal/core/datamodel/session"
	"github.com/docconnect/docconnect/internal/payment"
)

type CreateSessionDTO struct {
	DoctorID    string `json:"doctor_id"`
	SessionType string `json:"session_type"`
}

func (d CreateSessionDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("doctor_id", d.DoctorID).Required()
	validator.Field("session_type", d.SessionType).
		OneOf([]string{sessionmodel.TypeOneTime, sessionmodel.TypeSubscription}, errors.ErrCodeInvalidSessionType)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// CreateSessionResponse hands the caller everything needed to complete
// checkout; the session stays pending until the gateway confirms payment.
type CreateSessionResponse struct {
	SessionID  string `json:"session_id"`
	PaymentURL string `json:"payment_url"`
	Reference  string `json:"reference"`
}

type SessionView struct {
	ID            string    `json:"id"`
	DoctorID      string    `json:"doctor_id"`
	PatientID     string    `json:"patient_id"`
	SessionType   string    `json:"session_type"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	AmountNaira   float64   `json:"amount_naira"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToView(s *sessionmodel.ChatSession) SessionView {
	return SessionView{
		ID:            s.ID,
		DoctorID:      s.DoctorID,
		PatientID:     s.PatientID,
		SessionType:   s.SessionType,
		Status:        s.Status,
		PaymentStatus: s.PaymentStatus,
		AmountNaira:   payment.KoboToNaira(s.AmountKobo),
		CreatedAt:     s.CreatedAt,
	}
}

type ListResponse struct {
	Sessions []SessionView `json:"sessions"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PerPage  int           `json:"per_page"`
}
