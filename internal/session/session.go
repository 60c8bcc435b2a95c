package session

import (
	"context"

	"github.com/docconnect/docconnect/internal/core/datamodel/doctor"
	"github.com/docconnect/docconnect/internal/core/datamodel/payment"
	"github.com/docconnect/docconnect/internal/core/datamodel/session"
	"github.com/docconnect/docconnect/internal/core/datamodel/user"
	"github.com/docconnect/docconnect/internal/paystack"
)

type ServiceAPI interface {
	CreateSession(ctx context.Context, patientID string, dto CreateSessionDTO) (*CreateSessionResponse, error)
	GetSession(ctx context.Context, id string) (*session.ChatSession, error)
	ListForPatient(ctx context.Context, patientID string, page, perPage int) ([]*session.ChatSession, int64, error)
	ListForDoctor(ctx context.Context, doctorUserID string, page, perPage int) ([]*session.ChatSession, int64, error)
}

type RepositoryAPI interface {
	Create(s *session.ChatSession) error
	GetByID(id string) (*session.ChatSession, error)
	Delete(id string) error
	ListByPatient(patientID string, page, perPage int) ([]*session.ChatSession, int64, error)
	ListByDoctor(doctorID string, page, perPage int) ([]*session.ChatSession, int64, error)
}

// DoctorReaderAPI is the slice of the doctor store the orchestrator needs.
type DoctorReaderAPI interface {
	GetVerifiedByID(id string) (*doctor.DoctorProfile, error)
	GetByUserID(userID string) (*doctor.DoctorProfile, error)
}

type ProfileReaderAPI interface {
	GetByID(id string) (*user.Profile, error)
}

type PaymentWriterAPI interface {
	Create(p *payment.Payment) error
}

// GatewayAPI is the slice of the Paystack client used during checkout.
type GatewayAPI interface {
	InitializeTransaction(ctx context.Context, req paystack.InitializeTransactionRequest) (*paystack.InitializeTransactionResponse, error)
}
