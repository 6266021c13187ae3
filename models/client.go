package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Client is a gym member who can enroll in classes.
type Client struct {
	bun.BaseModel `bun:"table:clients,alias:c"`

	ID             int64     `bun:"id,pk,autoincrement" json:"id"`
	Name           string    `bun:"name,notnull" json:"name"`
	Age            int       `bun:"age,notnull" json:"age"`
	MembershipType string    `bun:"membership_type,notnull" json:"membershipType"`
	CreatedAt      time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt      time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

var _ bun.BeforeAppendModelHook = (*Client)(nil)

func (c *Client) BeforeAppendModel(_ context.Context, query bun.Query) error {
	touch(query, &c.CreatedAt, &c.UpdatedAt)
	return nil
}
