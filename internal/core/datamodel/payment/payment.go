package payment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusSuccess  = "success"
	StatusFailed   = "failed"
	StatusRefunded = "refunded"
)

// Payment is one attempted charge tied to exactly one chat session. PaystackRef
// is the join key the webhook uses to find the row, so it is unique. Cuts are
// computed once at creation; platform_cut_kobo + doctor_cut_kobo == amount_kobo.
type Payment struct {
	ID              string    `gorm:"column:id;type:uuid;primaryKey"`
	SessionID       string    `gorm:"column:session_id;type:uuid;not null;index"`
	PaystackRef     string    `gorm:"column:paystack_ref;not null;uniqueIndex"`
	AmountKobo      int64     `gorm:"column:amount_kobo;not null"`
	PlatformCutKobo int64     `gorm:"column:platform_cut_kobo;not null"`
	DoctorCutKobo   int64     `gorm:"column:doctor_cut_kobo;not null"`
	Status          string    `gorm:"column:status;not null;default:pending"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (p *Payment) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now().UTC()
	return nil
}
