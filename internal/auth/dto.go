package auth

import (
	errors "github.com/docconnect/docconnect/internal"
	"github.com/docconnect/docconnect/internal/core/common/validation"
	"github.com/docconnect/docconnect/internal/core/datamodel/user"
)

// RegisterDTO is the transport shape for account creation. Role is restricted
// to patient or doctor; admins are provisioned out of band.
type RegisterDTO struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d *RegisterDTO) Validate() error {
	if d.Role == "" {
		d.Role = user.RolePatient
	}

	validator := validation.NewValidator()
	validator.Field("full_name", d.FullName).Required().MaxLength(120)
	validator.Field("email", d.Email).Required().MaxLength(254)
	validator.Field("password", d.Password).Required().MinLength(8)
	validator.Field("role", d.Role).OneOf([]string{user.RolePatient, user.RoleDoctor}, errors.ErrCodeValidationFailed)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func (d LoginDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("email", d.Email).Required()
	validator.Field("password", d.Password).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("refresh_token", d.RefreshToken).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
