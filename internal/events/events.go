package events

import (
	"context"
	"time"

	"bmi-advisor/internal/models"
)

// ReadingEvent announces a newly stored reading.
type ReadingEvent struct {
	ReadingID  int64     `json:"reading_id"`
	UserID     int64     `json:"user_id"`
	BMI        float64   `json:"bmi"`
	Category   string    `json:"category"`
	RecordedAt time.Time `json:"recorded_at"`
}

func FromReading(r models.Reading) ReadingEvent {
	return ReadingEvent{
		ReadingID:  r.ID,
		UserID:     r.UserID,
		BMI:        r.BMI,
		Category:   r.Category,
		RecordedAt: r.CreatedAt,
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev ReadingEvent) error
	Close() error
}

// Noop drops every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, ReadingEvent) error { return nil }
func (Noop) Close() error                                { return nil }
