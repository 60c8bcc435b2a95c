package session

import (
	"context"
	"log/slog"

	errors "github.com/docconnect/docconnect/internal"
	paymentmodel "github.com/docconnect/docconnect/internal/core/datamodel/payment"
	sessionmodel "github.com/docconnect/docconnect/internal/core/datamodel/session"
	"github.com/docconnect/docconnect/internal/payment"
	"github.com/docconnect/docconnect/internal/paystack"
)

type Service struct {
	sessions RepositoryAPI
	doctors  DoctorReaderAPI
	profiles ProfileReaderAPI
	payments PaymentWriterAPI
	gateway  GatewayAPI
	logger   *slog.Logger
}

func NewService(
	sessions RepositoryAPI,
	doctors DoctorReaderAPI,
	profiles ProfileReaderAPI,
	payments PaymentWriterAPI,
	gateway GatewayAPI,
	logger *slog.Logger,
) *Service {
	return &Service{
		sessions: sessions,
		doctors:  doctors,
		profiles: profiles,
		payments: payments,
		gateway:  gateway,
		logger:   logger,
	}
}

// CreateSession books a pending session and opens a checkout with the gateway.
// The session row exists before the gateway call so the webhook always has a
// row to activate; if the gateway call fails the row is deleted again.
func (s *Service) CreateSession(ctx context.Context, patientID string, dto CreateSessionDTO) (*CreateSessionResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.doctors.GetVerifiedByID(dto.DoctorID)
	if err != nil {
		s.logger.Error("failed to load doctor", "doctor_id", dto.DoctorID, "error", err)
		return nil, errors.NewInternalError("could not load doctor", err)
	}
	if doc == nil {
		return nil, errors.ErrDoctorNotFound
	}

	var rate *int64
	switch dto.SessionType {
	case sessionmodel.TypeOneTime:
		rate = doc.OneTimeRateKobo
	case sessionmodel.TypeSubscription:
		rate = doc.SubscriptionRateKobo
	}
	if rate == nil || *rate <= 0 {
		return nil, errors.ErrRatesNotSet
	}
	amountKobo := *rate

	patient, err := s.profiles.GetByID(patientID)
	if err != nil {
		s.logger.Error("failed to load patient profile", "patient_id", patientID, "error", err)
		return nil, errors.NewInternalError("could not load patient profile", err)
	}
	if patient == nil {
		return nil, errors.ErrPatientNotFound
	}

	platformCut, doctorCut := payment.SplitFee(amountKobo)

	chatSession := &sessionmodel.ChatSession{
		DoctorID:        doc.ID,
		PatientID:       patient.ID,
		SessionType:     dto.SessionType,
		Status:          sessionmodel.StatusPending,
		PaymentStatus:   sessionmodel.PaymentPending,
		AmountKobo:      amountKobo,
		PlatformFeeKobo: platformCut,
	}
	if err := s.sessions.Create(chatSession); err != nil {
		s.logger.Error("failed to create session", "doctor_id", doc.ID, "patient_id", patient.ID, "error", err)
		return nil, errors.NewInternalError("could not create session", err)
	}

	reference := paystack.SessionReference(chatSession.ID)

	initReq := paystack.InitializeTransactionRequest{
		Email:      patient.Email,
		AmountKobo: amountKobo,
		Reference:  reference,
		Metadata: map[string]interface{}{
			"session_id": chatSession.ID,
			"doctor_id":  doc.ID,
			"patient_id": patient.ID,
		},
	}
	if doc.PaystackSubaccountCode != nil && *doc.PaystackSubaccountCode != "" {
		initReq.Subaccount = *doc.PaystackSubaccountCode
		initReq.TransactionCharge = platformCut
	}

	initResp, err := s.gateway.InitializeTransaction(ctx, initReq)
	if err != nil {
		s.logger.Error("gateway initialization failed, rolling back session",
			"session_id", chatSession.ID, "reference", reference, "error", err)
		if delErr := s.sessions.Delete(chatSession.ID); delErr != nil {
			s.logger.Error("failed to delete session after gateway failure",
				"session_id", chatSession.ID, "error", delErr)
		}
		return nil, errors.NewGatewayError("payment initialization failed", err)
	}

	pay := &paymentmodel.Payment{
		SessionID:       chatSession.ID,
		PaystackRef:     reference,
		AmountKobo:      amountKobo,
		PlatformCutKobo: platformCut,
		DoctorCutKobo:   doctorCut,
		Status:          paymentmodel.StatusPending,
	}
	if err := s.payments.Create(pay); err != nil {
		s.logger.Error("failed to record payment", "session_id", chatSession.ID, "reference", reference, "error", err)
		return nil, errors.NewInternalError("could not record payment", err)
	}

	s.logger.Info("session created",
		"session_id", chatSession.ID,
		"doctor_id", doc.ID,
		"session_type", dto.SessionType,
		"amount_kobo", amountKobo,
		"reference", reference)

	return &CreateSessionResponse{
		SessionID:  chatSession.ID,
		PaymentURL: initResp.AuthorizationURL,
		Reference:  reference,
	}, nil
}

func (s *Service) GetSession(ctx context.Context, id string) (*sessionmodel.ChatSession, error) {
	chatSession, err := s.sessions.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load session", "session_id", id, "error", err)
		return nil, errors.NewInternalError("could not load session", err)
	}
	if chatSession == nil {
		return nil, errors.ErrSessionNotFound
	}

	identity, ok := errors.IdentityFromContext(ctx)
	if !ok {
		return nil, errors.ErrInvalidToken
	}
	if !s.canView(identity, chatSession) {
		return nil, errors.ErrSessionNotFound
	}
	return chatSession, nil
}

// canView hides sessions from everyone but the two parties and admins. A
// non-party gets not found rather than forbidden so session ids do not leak.
func (s *Service) canView(identity errors.Identity, chatSession *sessionmodel.ChatSession) bool {
	if identity.IsAdmin() {
		return true
	}
	if identity.UserID == chatSession.PatientID {
		return true
	}
	doc, err := s.doctors.GetByUserID(identity.UserID)
	if err != nil || doc == nil {
		return false
	}
	return doc.ID == chatSession.DoctorID
}

func (s *Service) ListForPatient(ctx context.Context, patientID string, page, perPage int) ([]*sessionmodel.ChatSession, int64, error) {
	page, perPage = normalizePage(page, perPage)
	sessions, total, err := s.sessions.ListByPatient(patientID, page, perPage)
	if err != nil {
		s.logger.Error("failed to list patient sessions", "patient_id", patientID, "error", err)
		return nil, 0, errors.NewInternalError("could not list sessions", err)
	}
	return sessions, total, nil
}

func (s *Service) ListForDoctor(ctx context.Context, doctorUserID string, page, perPage int) ([]*sessionmodel.ChatSession, int64, error) {
	doc, err := s.doctors.GetByUserID(doctorUserID)
	if err != nil {
		s.logger.Error("failed to load doctor profile", "user_id", doctorUserID, "error", err)
		return nil, 0, errors.NewInternalError("could not load doctor profile", err)
	}
	if doc == nil {
		return nil, 0, errors.ErrDoctorNotFound
	}

	page, perPage = normalizePage(page, perPage)
	sessions, total, err := s.sessions.ListByDoctor(doc.ID, page, perPage)
	if err != nil {
		s.logger.Error("failed to list doctor sessions", "doctor_id", doc.ID, "error", err)
		return nil, 0, errors.NewInternalError("could not list sessions", err)
	}
	return sessions, total, nil
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
