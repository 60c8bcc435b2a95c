package session

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeOneTime      = "one_time"
	TypeSubscription = "subscription"
)

const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	PaymentPending  = "pending"
	PaymentSuccess  = "success"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// ChatSession is one patient-doctor engagement. It is created pending/pending
// and only the webhook path moves it to active/success. Amounts are kobo and
// are frozen at creation time; later rate changes never touch existing rows.
type ChatSession struct {
	ID              string    `gorm:"column:id;type:uuid;primaryKey"`
	DoctorID        string    `gorm:"column:doctor_id;type:uuid;not null;index"`
	PatientID       string    `gorm:"column:patient_id;type:uuid;not null;index"`
	SessionType     string    `gorm:"column:session_type;not null"`
	Status          string    `gorm:"column:status;not null;default:pending"`
	PaymentStatus   string    `gorm:"column:payment_status;not null;default:pending"`
	AmountKobo      int64     `gorm:"column:amount_kobo;not null"`
	PlatformFeeKobo int64     `gorm:"column:platform_fee_kobo;not null"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (ChatSession) TableName() string { return "chat_sessions" }

func (s *ChatSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	return nil
}

func (s *ChatSession) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now().UTC()
	return nil
}
