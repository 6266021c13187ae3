// cmd/migrate/main.go
// Copies trainers, clients, classes and enrollments from the legacy
// Sequelize database (SQLite file or MySQL) into the configured database.
//
// Usage:
//
//	LEGACY_DRIVER=sqlite LEGACY_DSN=./database.sqlite \
//	DB_DRIVER=postgres DATABASE_URL=postgres://gym:pw@localhost:5432/gym?sslmode=disable \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/padraicbc/gymapi/config"
	bundb "github.com/padraicbc/gymapi/db"
	"github.com/padraicbc/gymapi/models"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// --- legacy ---
	if cfg.LegacyDSN == "" {
		log.Fatal("LEGACY_DSN required, e.g. ./database.sqlite or user:pass@tcp(host:3306)/gym?parseTime=true")
	}
	legacy, err := openLegacy(cfg.LegacyDriver, cfg.LegacyDSN)
	if err != nil {
		log.Fatalf("open legacy: %v", err)
	}
	defer legacy.Close()
	if err := legacy.PingContext(ctx); err != nil {
		log.Fatalf("ping legacy: %v", err)
	}
	log.Printf("connected to legacy %s database", cfg.LegacyDriver)

	// --- target ---
	target := bundb.Setup(cfg)
	defer target.Close()
	log.Printf("connected to %s", cfg.DBDriver)

	if err := run(ctx, legacy, target); err != nil {
		log.Fatal(err)
	}
	log.Println("migration complete")
}

func openLegacy(driver, dsn string) (*sql.DB, error) {
	if driver == config.DriverMySQL {
		return sql.Open("mysql", dsn)
	}
	return sql.Open("sqlite3", config.SQLiteDSN(dsn))
}

// run creates the target tables and copies every legacy table in
// dependency order. Rows already present are skipped, so re-runs are safe.
func run(ctx context.Context, legacy *sql.DB, target *bun.DB) error {
	if err := bundb.CreateTables(ctx, target); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"trainers", func() (int, error) { return migrateTrainers(ctx, legacy, target) }},
		{"clients", func() (int, error) { return migrateClients(ctx, legacy, target) }},
		{"classes", func() (int, error) { return migrateClasses(ctx, legacy, target) }},
		{"class_clients", func() (int, error) { return migrateEnrollments(ctx, legacy, target) }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			return fmt.Errorf("migrate %s: %w", s.name, err)
		}
		log.Printf("%-15s  %d rows migrated", s.name, n)
	}

	resetSequences(ctx, target)
	return nil
}

// --- helpers ---

// Sequelize writes "2006-01-02 15:04:05.000 +00:00" to SQLite; MySQL
// DATETIME casts come back without an offset.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999 -07:00",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func parseTime(s sql.NullString) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s.String); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s.String)
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, db *bun.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	q := db.NewInsert().Model(&rows).Returning("NULL")
	if db.Dialect().Name() == dialect.MySQL {
		q = q.Ignore()
	} else {
		q = q.On("CONFLICT DO NOTHING")
	}
	_, err := q.Exec(ctx)
	return err
}

// copyRows streams query results through scan and inserts them in batches.
func copyRows[T any](ctx context.Context, legacy *sql.DB, target *bun.DB, query string, scan func(*sql.Rows) (T, error)) (int, error) {
	rows, err := legacy.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	batch := make([]T, 0, batchSize)
	total := 0
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return total, err
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, target, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return total, err
	}
	if err := bulkInsert(ctx, target, batch); err != nil {
		return total, err
	}
	return total + len(batch), nil
}

// --- per-table migrations ---

func migrateTrainers(ctx context.Context, legacy *sql.DB, target *bun.DB) (int, error) {
	return copyRows(ctx, legacy, target,
		`SELECT id, name, specialization, email,
		        CAST(createdAt AS CHAR), CAST(updatedAt AS CHAR)
		 FROM Trainers ORDER BY id`,
		func(rows *sql.Rows) (models.Trainer, error) {
			var (
				r                models.Trainer
				created, updated sql.NullString
			)
			if err := rows.Scan(&r.ID, &r.Name, &r.Specialization, &r.Email, &created, &updated); err != nil {
				return r, err
			}
			return r, stamps(created, updated, &r.CreatedAt, &r.UpdatedAt)
		})
}

func migrateClients(ctx context.Context, legacy *sql.DB, target *bun.DB) (int, error) {
	return copyRows(ctx, legacy, target,
		`SELECT id, name, age, membershipType,
		        CAST(createdAt AS CHAR), CAST(updatedAt AS CHAR)
		 FROM Clients ORDER BY id`,
		func(rows *sql.Rows) (models.Client, error) {
			var (
				r                models.Client
				created, updated sql.NullString
			)
			if err := rows.Scan(&r.ID, &r.Name, &r.Age, &r.MembershipType, &created, &updated); err != nil {
				return r, err
			}
			return r, stamps(created, updated, &r.CreatedAt, &r.UpdatedAt)
		})
}

func migrateClasses(ctx context.Context, legacy *sql.DB, target *bun.DB) (int, error) {
	return copyRows(ctx, legacy, target,
		`SELECT id, trainerId, title, CAST(dateTime AS CHAR), capacity,
		        CAST(createdAt AS CHAR), CAST(updatedAt AS CHAR)
		 FROM Classes ORDER BY id`,
		func(rows *sql.Rows) (models.Class, error) {
			var (
				r                      models.Class
				when, created, updated sql.NullString
			)
			if err := rows.Scan(&r.ID, &r.TrainerID, &r.Title, &when, &r.Capacity, &created, &updated); err != nil {
				return r, err
			}
			t, err := parseTime(when)
			if err != nil {
				return r, err
			}
			r.DateTime = t
			return r, stamps(created, updated, &r.CreatedAt, &r.UpdatedAt)
		})
}

func migrateEnrollments(ctx context.Context, legacy *sql.DB, target *bun.DB) (int, error) {
	return copyRows(ctx, legacy, target,
		`SELECT DISTINCT classId, clientId FROM ClassClients ORDER BY classId, clientId`,
		func(rows *sql.Rows) (models.ClassClient, error) {
			var r models.ClassClient
			err := rows.Scan(&r.ClassID, &r.ClientID)
			return r, err
		})
}

func stamps(created, updated sql.NullString, createdAt, updatedAt *time.Time) error {
	var err error
	if *createdAt, err = parseTime(created); err != nil {
		return err
	}
	*updatedAt, err = parseTime(updated)
	return err
}

// resetSequences advances each PG sequence to MAX(id) so new inserts don't
// conflict. SQLite and MySQL track explicit ids on their own.
func resetSequences(ctx context.Context, db *bun.DB) {
	if db.Dialect().Name() != dialect.PG {
		return
	}
	for _, table := range []string{"trainers", "clients", "classes"} {
		q := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))",
			table, table,
		)
		if _, err := db.ExecContext(ctx, q); err != nil {
			log.Printf("reset seq %s: %v", table, err)
		}
	}
	log.Println("sequences reset")
}
