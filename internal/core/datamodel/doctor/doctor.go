package doctor

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VerificationPending  = "pending"
	VerificationInReview = "pending_verification"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// DoctorProfile carries everything bookable about a doctor. Rates are stored in
// kobo; a nil rate means the doctor has not configured that session kind yet.
type DoctorProfile struct {
	ID                     string     `gorm:"column:id;type:uuid;primaryKey"`
	UserID                 string     `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	SpecializationID       *string    `gorm:"column:specialization_id"`
	Bio                    *string    `gorm:"column:bio"`
	LocationState          *string    `gorm:"column:location_state"`
	LocationCity           *string    `gorm:"column:location_city"`
	MDCNNumber             *string    `gorm:"column:mdcn_number"`
	VerificationStatus     string     `gorm:"column:verification_status;not null;default:pending"`
	OneTimeRateKobo        *int64     `gorm:"column:one_time_rate_kobo"`
	SubscriptionRateKobo   *int64     `gorm:"column:subscription_rate_kobo"`
	IsOnline               bool       `gorm:"column:is_online;not null;default:false"`
	LastSeen               *time.Time `gorm:"column:last_seen"`
	YearsExperience        *int       `gorm:"column:years_experience"`
	PaystackSubaccountCode *string    `gorm:"column:paystack_subaccount_code"`
	Slug                   string     `gorm:"column:slug;not null"`
	RatingAvg              float64    `gorm:"column:rating_avg;not null;default:0"`
	RatingCount            int        `gorm:"column:rating_count;not null;default:0"`
	CreatedAt              time.Time  `gorm:"column:created_at"`
	UpdatedAt              time.Time  `gorm:"column:updated_at"`
}

func (DoctorProfile) TableName() string { return "doctor_profiles" }

func (d *DoctorProfile) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	return nil
}

func (d *DoctorProfile) BeforeUpdate(tx *gorm.DB) error {
	d.UpdatedAt = time.Now().UTC()
	return nil
}

const (
	CredentialPending  = "pending"
	CredentialApproved = "approved"
	CredentialRejected = "rejected"
)

// Credential is one uploaded verification document, reviewed by an admin.
type Credential struct {
	ID           string     `gorm:"column:id;type:uuid;primaryKey"`
	DoctorID     string     `gorm:"column:doctor_id;type:uuid;not null;index"`
	DocType      string     `gorm:"column:doc_type;not null"`
	FileURL      string     `gorm:"column:file_url;not null"`
	FileName     string     `gorm:"column:file_name;not null"`
	Status       string     `gorm:"column:status;not null;default:pending"`
	ReviewerNote *string    `gorm:"column:reviewer_note"`
	ReviewedAt   *time.Time `gorm:"column:reviewed_at"`
	ReviewerID   *string    `gorm:"column:reviewer_id"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (Credential) TableName() string { return "credentials" }

func (c *Credential) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now().UTC()
	return nil
}
