package admin

import (
	"github.com/docconnect/docconnect/internal/core/datamodel/doctor"
)

// AdminDoctorRepositoryAPI is the elevated doctor store used only by the admin
// review path.
type AdminDoctorRepositoryAPI interface {
	GetByID(id string) (*doctor.DoctorProfile, error)
	SetVerificationStatus(doctorID, status string) error
	ReviewCredentials(doctorID, status string, reviewerID string, note *string) error
}
