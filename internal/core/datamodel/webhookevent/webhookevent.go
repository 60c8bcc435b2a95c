package webhookevent

import "time"

// WebhookEvent records a gateway delivery we have already applied, keyed by
// (event_type, reference). The unique index makes replayed deliveries a fast
// no-op instead of re-running their mutations.
type WebhookEvent struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	EventType  string    `gorm:"column:event_type;not null;uniqueIndex:ux_event_reference,priority:1"`
	Reference  string    `gorm:"column:reference;not null;uniqueIndex:ux_event_reference,priority:2"`
	ReceivedAt time.Time `gorm:"column:received_at;not null;autoCreateTime"`
}

func (WebhookEvent) TableName() string { return "webhook_events" }
