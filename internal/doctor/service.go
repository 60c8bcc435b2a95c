package doctor

import (
	"context"
	"log/slog"

	errors "github.com/docconnect/docconnect/internal"
	doctormodel "github.com/docconnect/docconnect/internal/core/datamodel/doctor"
	"github.com/docconnect/docconnect/internal/payment"
	"github.com/docconnect/docconnect/internal/paystack"
)

// The platform cut is collected as a flat transaction_charge per checkout, so
// the subaccount's percentage split stays at zero.
const subaccountPercentageCharge = 0

type Service struct {
	doctors RepositoryAPI
	gateway GatewayAPI
	logger  *slog.Logger
}

func NewService(doctors RepositoryAPI, gateway GatewayAPI, logger *slog.Logger) *Service {
	return &Service{doctors: doctors, gateway: gateway, logger: logger}
}

// List returns verified doctors matching the discovery filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*doctormodel.DoctorProfile, int64, error) {
	filter.Normalize()
	doctors, total, err := s.doctors.List(filter)
	if err != nil {
		s.logger.Error("failed to list doctors", "error", err)
		return nil, 0, errors.NewInternalError("could not list doctors", err)
	}
	return doctors, total, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*doctormodel.DoctorProfile, error) {
	doc, err := s.doctors.GetVerifiedByID(id)
	if err != nil {
		s.logger.Error("failed to load doctor", "doctor_id", id, "error", err)
		return nil, errors.NewInternalError("could not load doctor", err)
	}
	if doc == nil {
		return nil, errors.ErrDoctorNotFound
	}
	return doc, nil
}

func (s *Service) ListBanks(ctx context.Context) ([]paystack.Bank, error) {
	banks, err := s.gateway.ListBanks(ctx, "nigeria")
	if err != nil {
		s.logger.Error("failed to list banks", "error", err)
		return nil, errors.NewGatewayError("could not fetch bank list", err)
	}
	return banks, nil
}

// ResolveBankAccount asks the gateway to confirm an account number resolves to
// a named account before the doctor commits it for payouts.
func (s *Service) ResolveBankAccount(ctx context.Context, dto ResolveBankAccountDTO) (*paystack.ResolvedAccount, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	account, err := s.gateway.ResolveAccountNumber(ctx, dto.AccountNumber, dto.BankCode)
	if err != nil {
		s.logger.Error("account resolution failed", "bank_code", dto.BankCode, "error", err)
		return nil, errors.NewGatewayError("could not resolve account number", err)
	}
	return account, nil
}

// CreatePayoutSubaccount registers the doctor's settlement account with the
// gateway and stores the returned subaccount code on the profile. Sessions
// booked afterwards route the doctor's cut straight to this subaccount.
func (s *Service) CreatePayoutSubaccount(ctx context.Context, doctorUserID string, dto CreateSubaccountDTO) (*paystack.Subaccount, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.doctors.GetByUserID(doctorUserID)
	if err != nil {
		s.logger.Error("failed to load doctor profile", "user_id", doctorUserID, "error", err)
		return nil, errors.NewInternalError("could not load doctor profile", err)
	}
	if doc == nil {
		return nil, errors.ErrDoctorNotFound
	}

	sub, err := s.gateway.CreateSubaccount(ctx, paystack.CreateSubaccountRequest{
		BusinessName:     dto.BusinessName,
		SettlementBank:   dto.BankCode,
		AccountNumber:    dto.AccountNumber,
		PercentageCharge: subaccountPercentageCharge,
	})
	if err != nil {
		s.logger.Error("subaccount creation failed", "doctor_id", doc.ID, "error", err)
		return nil, errors.NewGatewayError("could not create payout subaccount", err)
	}

	if err := s.doctors.SetSubaccountCode(doc.ID, sub.SubaccountCode); err != nil {
		s.logger.Error("failed to store subaccount code", "doctor_id", doc.ID, "error", err)
		return nil, errors.NewInternalError("could not store subaccount code", err)
	}

	s.logger.Info("payout subaccount created", "doctor_id", doc.ID, "subaccount_code", sub.SubaccountCode)
	return sub, nil
}

// SetRates updates the doctor's posted prices. Existing sessions keep the
// amounts they were booked at.
func (s *Service) SetRates(ctx context.Context, doctorUserID string, dto SetRatesDTO) (*doctormodel.DoctorProfile, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.doctors.GetByUserID(doctorUserID)
	if err != nil {
		s.logger.Error("failed to load doctor profile", "user_id", doctorUserID, "error", err)
		return nil, errors.NewInternalError("could not load doctor profile", err)
	}
	if doc == nil {
		return nil, errors.ErrDoctorNotFound
	}

	var oneTimeKobo, subscriptionKobo *int64
	if dto.OneTimeRate != nil {
		v := payment.NairaToKobo(*dto.OneTimeRate)
		oneTimeKobo = &v
	}
	if dto.SubscriptionRate != nil {
		v := payment.NairaToKobo(*dto.SubscriptionRate)
		subscriptionKobo = &v
	}

	if err := s.doctors.SetRates(doc.ID, oneTimeKobo, subscriptionKobo); err != nil {
		s.logger.Error("failed to set rates", "doctor_id", doc.ID, "error", err)
		return nil, errors.NewInternalError("could not update rates", err)
	}

	updated, err := s.doctors.GetByID(doc.ID)
	if err != nil || updated == nil {
		return doc, nil
	}
	return updated, nil
}
