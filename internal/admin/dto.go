package admin

import (
	errors "github.com/docconnect/docconnect/internal"
	"github.com/docconnect/docconnect/internal/core/common/validation"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// VerifyDoctorDTO is the admin review decision for a doctor's credentials.
type VerifyDoctorDTO struct {
	DoctorProfileID string  `json:"doctor_profile_id"`
	Action          string  `json:"action"`
	Note            *string `json:"note"`
}

func (d VerifyDoctorDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("doctor_profile_id", d.DoctorProfileID).Required()
	validator.Field("action", d.Action).Required().
		OneOf([]string{ActionApprove, ActionReject}, errors.ErrCodeValidationFailed)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type VerifyDoctorResponse struct {
	DoctorProfileID    string `json:"doctor_profile_id"`
	VerificationStatus string `json:"verification_status"`
}
