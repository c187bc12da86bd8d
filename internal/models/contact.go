package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Contact is a visitor-submitted reservation lead. Append-only; rows are
// never updated or deleted by the service.
type Contact struct {
	bun.BaseModel `bun:"table:contacts,alias:c"`

	ID          int64     `json:"id" bun:"id,pk,autoincrement"`
	Name        string    `json:"name" bun:"name,notnull"`
	Phone       string    `json:"phone,omitempty" bun:"phone"`
	Email       string    `json:"email" bun:"email,notnull"`
	Message     string    `json:"message,omitempty" bun:"message"`
	SubmittedAt time.Time `json:"submitted_at" bun:"submitted_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeAppendModelHook = (*Contact)(nil)

func (c *Contact) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && c.SubmittedAt.IsZero() {
		c.SubmittedAt = time.Now()
	}
	return nil
}
