// Package models holds the bun table models for trainers, clients, classes
// and their enrollments.
package models

import (
	"time"

	"github.com/uptrace/bun"
)

// touch fills zero timestamps on insert and bumps updated on update.
// Non-zero values are kept so imported rows retain their history.
func touch(query bun.Query, created, updated *time.Time) {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if created.IsZero() {
			*created = now
		}
		if updated.IsZero() {
			*updated = *created
		}
	case *bun.UpdateQuery:
		*updated = now
	}
}
