package subscription

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// Subscription is a recurring billing relationship between a patient and a
// doctor. Rows are created only in response to gateway subscription.create
// events and are independent of any single chat session.
type Subscription struct {
	ID               string    `gorm:"column:id;type:uuid;primaryKey"`
	PatientID        string    `gorm:"column:patient_id;type:uuid;not null;index"`
	DoctorID         string    `gorm:"column:doctor_id;type:uuid;not null;index"`
	PaystackSubCode  string    `gorm:"column:paystack_sub_code;not null;uniqueIndex"`
	PaystackPlanCode *string   `gorm:"column:paystack_plan_code"`
	PlanAmountKobo   int64     `gorm:"column:plan_amount_kobo;not null"`
	Status           string    `gorm:"column:status;not null;default:active"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	return nil
}

func (s *Subscription) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now().UTC()
	return nil
}
