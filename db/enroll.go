package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/padraicbc/gymapi/models"
)

// Enroll adds clientID to the participants of classID. Lookups, the
// duplicate and capacity checks and the insert share one transaction, and
// the class row is locked where the dialect supports SELECT ... FOR UPDATE,
// so concurrent enrollments cannot overfill a class.
func Enroll(ctx context.Context, db *bun.DB, classID, clientID int64) error {
	lock := db.Dialect().Name() != dialect.SQLite

	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		class := new(models.Class)
		q := tx.NewSelect().Model(class).Where("cl.id = ?", classID)
		if lock {
			q = q.For("UPDATE")
		}
		if err := q.Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrClassNotFound
			}
			return fmt.Errorf("select class %d: %w", classID, err)
		}

		exists, err := tx.NewSelect().Model((*models.Client)(nil)).
			Where("c.id = ?", clientID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("select client %d: %w", clientID, err)
		}
		if !exists {
			return ErrClientNotFound
		}

		enrolled, err := tx.NewSelect().Model((*models.ClassClient)(nil)).
			Where("cc.class_id = ? AND cc.client_id = ?", classID, clientID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("check enrollment: %w", err)
		}
		if enrolled {
			return ErrAlreadyEnrolled
		}

		count, err := tx.NewSelect().Model((*models.ClassClient)(nil)).
			Where("cc.class_id = ?", classID).
			Count(ctx)
		if err != nil {
			return fmt.Errorf("count participants: %w", err)
		}
		if count >= class.Capacity {
			return ErrClassFull
		}

		link := &models.ClassClient{ClassID: classID, ClientID: clientID}
		if _, err := tx.NewInsert().Model(link).Exec(ctx); err != nil {
			if IsDuplicate(err) {
				return ErrAlreadyEnrolled
			}
			return fmt.Errorf("insert enrollment: %w", err)
		}
		return nil
	})
}

// Participants returns the clients enrolled in classID, ordered by id.
func Participants(ctx context.Context, db bun.IDB, classID int64) ([]models.Client, error) {
	exists, err := db.NewSelect().Model((*models.Class)(nil)).
		Where("cl.id = ?", classID).
		Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("select class %d: %w", classID, err)
	}
	if !exists {
		return nil, ErrClassNotFound
	}

	clients := make([]models.Client, 0)
	err = db.NewSelect().Model(&clients).
		Join("JOIN class_clients AS cc ON cc.client_id = c.id").
		Where("cc.class_id = ?", classID).
		OrderExpr("c.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select participants of %d: %w", classID, err)
	}
	return clients, nil
}
