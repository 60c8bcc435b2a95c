package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/docconnect/docconnect/internal/core/datamodel/doctor"
	doctorpkg "github.com/docconnect/docconnect/internal/doctor"
	"github.com/docconnect/docconnect/internal/payment"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) doctorpkg.RepositoryAPI {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) GetByID(id string) (*doctor.DoctorProfile, error) {
	return r.getOne("id = ?", id)
}

func (r *DoctorRepository) GetVerifiedByID(id string) (*doctor.DoctorProfile, error) {
	var d doctor.DoctorProfile
	err := r.db.Where("id = ? AND verification_status = ?", id, doctor.VerificationVerified).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepository) GetByUserID(userID string) (*doctor.DoctorProfile, error) {
	return r.getOne("user_id = ?", userID)
}

func (r *DoctorRepository) getOne(cond, arg string) (*doctor.DoctorProfile, error) {
	var d doctor.DoctorProfile
	err := r.db.Where(cond, arg).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// List returns verified doctors only, online first, best rated first.
func (r *DoctorRepository) List(filter doctorpkg.ListFilter) ([]*doctor.DoctorProfile, int64, error) {
	query := r.db.Model(&doctor.DoctorProfile{}).
		Where("verification_status = ?", doctor.VerificationVerified)

	if filter.SpecializationID != "" {
		query = query.Where("specialization_id = ?", filter.SpecializationID)
	}
	if filter.LocationState != "" {
		query = query.Where("location_state = ?", filter.LocationState)
	}
	if filter.OnlineOnly {
		query = query.Where("is_online = ?", true)
	}
	if filter.MinPriceNaira != nil {
		query = query.Where("one_time_rate_kobo >= ?", payment.NairaToKobo(*filter.MinPriceNaira))
	}
	if filter.MaxPriceNaira != nil {
		query = query.Where("one_time_rate_kobo <= ?", payment.NairaToKobo(*filter.MaxPriceNaira))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var doctors []*doctor.DoctorProfile
	err := query.
		Order("is_online DESC").
		Order("rating_avg DESC").
		Order("created_at ASC").
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&doctors).Error
	if err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

func (r *DoctorRepository) SetSubaccountCode(doctorID, code string) error {
	return r.db.Model(&doctor.DoctorProfile{}).
		Where("id = ?", doctorID).
		Update("paystack_subaccount_code", code).Error
}

// SetRates updates only the rates that were provided; a nil rate is left alone.
func (r *DoctorRepository) SetRates(doctorID string, oneTimeKobo, subscriptionKobo *int64) error {
	updates := map[string]interface{}{}
	if oneTimeKobo != nil {
		updates["one_time_rate_kobo"] = *oneTimeKobo
	}
	if subscriptionKobo != nil {
		updates["subscription_rate_kobo"] = *subscriptionKobo
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&doctor.DoctorProfile{}).
		Where("id = ?", doctorID).
		Updates(updates).Error
}

// AdminDoctorRepository carries the verification mutations reserved for the
// admin review path.
type AdminDoctorRepository struct {
	db *gorm.DB
}

func NewAdminDoctorRepository(db *gorm.DB) *AdminDoctorRepository {
	return &AdminDoctorRepository{db: db}
}

func (r *AdminDoctorRepository) GetByID(id string) (*doctor.DoctorProfile, error) {
	var d doctor.DoctorProfile
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *AdminDoctorRepository) SetVerificationStatus(doctorID, status string) error {
	return r.db.Model(&doctor.DoctorProfile{}).
		Where("id = ?", doctorID).
		Update("verification_status", status).Error
}

// ReviewCredentials stamps every credential of the doctor with the review
// outcome.
func (r *AdminDoctorRepository) ReviewCredentials(doctorID, status string, reviewerID string, note *string) error {
	now := time.Now().UTC()
	return r.db.Model(&doctor.Credential{}).
		Where("doctor_id = ?", doctorID).
		Updates(map[string]interface{}{
			"status":        status,
			"reviewer_id":   reviewerID,
			"reviewer_note": note,
			"reviewed_at":   now,
		}).Error
}
