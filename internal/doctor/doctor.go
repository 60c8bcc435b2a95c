package doctor

import (
	"context"

	"github.com/docconnect/docconnect/internal/core/datamodel/doctor"
	"github.com/docconnect/docconnect/internal/paystack"
)

// ListFilter is the discovery query: verified doctors only, optionally
// narrowed by specialty, state, presence and price band. Prices are naira.
type ListFilter struct {
	SpecializationID string
	LocationState    string
	OnlineOnly       bool
	MinPriceNaira    *float64
	MaxPriceNaira    *float64
	Page             int
	PerPage          int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 100 {
		f.PerPage = 12
	}
}

type RepositoryAPI interface {
	GetByID(id string) (*doctor.DoctorProfile, error)
	GetVerifiedByID(id string) (*doctor.DoctorProfile, error)
	GetByUserID(userID string) (*doctor.DoctorProfile, error)
	List(filter ListFilter) ([]*doctor.DoctorProfile, int64, error)
	SetSubaccountCode(doctorID, code string) error
	SetRates(doctorID string, oneTimeKobo, subscriptionKobo *int64) error
}

// GatewayAPI is the slice of the Paystack client the doctor service needs for
// payout onboarding.
type GatewayAPI interface {
	ResolveAccountNumber(ctx context.Context, accountNumber, bankCode string) (*paystack.ResolvedAccount, error)
	CreateSubaccount(ctx context.Context, req paystack.CreateSubaccountRequest) (*paystack.Subaccount, error)
	ListBanks(ctx context.Context, country string) ([]paystack.Bank, error)
}
