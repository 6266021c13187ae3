package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Class is a scheduled session led by one trainer. Capacity bounds the
// number of enrolled clients; it is checked at enrollment, not by the schema.
type Class struct {
	bun.BaseModel `bun:"table:classes,alias:cl"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	TrainerID int64     `bun:"trainer_id,notnull" json:"trainerId"`
	Title     string    `bun:"title,notnull" json:"title"`
	DateTime  time.Time `bun:"date_time,notnull" json:"dateTime"`
	Capacity  int       `bun:"capacity,notnull" json:"capacity"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updatedAt"`

	Trainer *Trainer `bun:"rel:belongs-to,join:trainer_id=id" json:"trainer,omitempty"`
	Clients []Client `bun:"m2m:class_clients,join:Class=Client" json:"clients"`
}

var _ bun.BeforeAppendModelHook = (*Class)(nil)

func (c *Class) BeforeAppendModel(_ context.Context, query bun.Query) error {
	touch(query, &c.CreatedAt, &c.UpdatedAt)
	return nil
}
