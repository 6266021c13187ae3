package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Trainer is a staff member who leads classes.
type Trainer struct {
	bun.BaseModel `bun:"table:trainers,alias:t"`

	ID             int64     `bun:"id,pk,autoincrement" json:"id"`
	Name           string    `bun:"name,notnull" json:"name"`
	Specialization string    `bun:"specialization,notnull" json:"specialization"`
	Email          string    `bun:"email,notnull" json:"email"`
	CreatedAt      time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt      time.Time `bun:"updated_at,notnull" json:"updatedAt"`

	Classes []*Class `bun:"rel:has-many,join:id=trainer_id" json:"classes,omitempty"`
}

var _ bun.BeforeAppendModelHook = (*Trainer)(nil)

func (t *Trainer) BeforeAppendModel(_ context.Context, query bun.Query) error {
	touch(query, &t.CreatedAt, &t.UpdatedAt)
	return nil
}
