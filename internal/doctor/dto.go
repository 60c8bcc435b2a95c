package doctor

import (
	errors "github.com/docconnect/docconnect/internal"
	"github.com/docconnect/docconnect/internal/core/common/validation"
	"github.com/docconnect/docconnect/internal/core/datamodel/doctor"
	"github.com/docconnect/docconnect/internal/payment"
)

// DoctorView is the public discovery card shape. Rates are rendered in naira.
type DoctorView struct {
	ID                string   `json:"id"`
	Slug              string   `json:"slug"`
	SpecializationID  *string  `json:"specialization_id"`
	Bio               *string  `json:"bio"`
	LocationState     *string  `json:"location_state"`
	LocationCity      *string  `json:"location_city"`
	IsOnline          bool     `json:"is_online"`
	YearsExperience   *int     `json:"years_experience"`
	RatingAvg         float64  `json:"rating_avg"`
	RatingCount       int      `json:"rating_count"`
	OneTimeRate       *float64 `json:"one_time_rate"`
	SubscriptionRate  *float64 `json:"subscription_rate"`
	AcceptsSubaccount bool     `json:"accepts_direct_payout"`
}

func ToView(d *doctor.DoctorProfile) DoctorView {
	view := DoctorView{
		ID:                d.ID,
		Slug:              d.Slug,
		SpecializationID:  d.SpecializationID,
		Bio:               d.Bio,
		LocationState:     d.LocationState,
		LocationCity:      d.LocationCity,
		IsOnline:          d.IsOnline,
		YearsExperience:   d.YearsExperience,
		RatingAvg:         d.RatingAvg,
		RatingCount:       d.RatingCount,
		AcceptsSubaccount: d.PaystackSubaccountCode != nil,
	}
	if d.OneTimeRateKobo != nil {
		rate := payment.KoboToNaira(*d.OneTimeRateKobo)
		view.OneTimeRate = &rate
	}
	if d.SubscriptionRateKobo != nil {
		rate := payment.KoboToNaira(*d.SubscriptionRateKobo)
		view.SubscriptionRate = &rate
	}
	return view
}

type ListResponse struct {
	Data    []DoctorView `json:"data"`
	Count   int64        `json:"count"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
}

type ResolveBankAccountDTO struct {
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
}

func (d ResolveBankAccountDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("account_number", d.AccountNumber).Required().MinLength(10).MaxLength(10)
	validator.Field("bank_code", d.BankCode).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type CreateSubaccountDTO struct {
	BusinessName  string `json:"business_name"`
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
}

func (d CreateSubaccountDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("business_name", d.BusinessName).Required().MaxLength(120)
	validator.Field("account_number", d.AccountNumber).Required().MinLength(10).MaxLength(10)
	validator.Field("bank_code", d.BankCode).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// SetRatesDTO updates a doctor's posted rates, in naira.
type SetRatesDTO struct {
	OneTimeRate      *float64 `json:"one_time_rate"`
	SubscriptionRate *float64 `json:"subscription_rate"`
}

func (d SetRatesDTO) Validate() error {
	if d.OneTimeRate == nil && d.SubscriptionRate == nil {
		return errors.NewValidationError("at least one rate is required", errors.ErrCodeValidationFailed)
	}
	if d.OneTimeRate != nil && *d.OneTimeRate <= 0 {
		return errors.NewValidationFieldError("one_time_rate", "one_time_rate must be positive", errors.ErrCodeInvalidAmount)
	}
	if d.SubscriptionRate != nil && *d.SubscriptionRate <= 0 {
		return errors.NewValidationFieldError("subscription_rate", "subscription_rate must be positive", errors.ErrCodeInvalidAmount)
	}
	return nil
}
