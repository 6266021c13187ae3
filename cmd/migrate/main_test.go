package main

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/padraicbc/gymapi/config"
	bundb "github.com/padraicbc/gymapi/db"
	"github.com/padraicbc/gymapi/models"
)

// legacySchema mirrors the tables Sequelize synced for the original app.
const legacySchema = `
CREATE TABLE Trainers (id INTEGER PRIMARY KEY AUTOINCREMENT, name VARCHAR(255) NOT NULL,
	specialization VARCHAR(255) NOT NULL, email VARCHAR(255) NOT NULL,
	createdAt DATETIME NOT NULL, updatedAt DATETIME NOT NULL);
CREATE TABLE Clients (id INTEGER PRIMARY KEY AUTOINCREMENT, name VARCHAR(255) NOT NULL,
	age INTEGER NOT NULL, membershipType VARCHAR(255) NOT NULL,
	createdAt DATETIME NOT NULL, updatedAt DATETIME NOT NULL);
CREATE TABLE Classes (id INTEGER PRIMARY KEY AUTOINCREMENT, trainerId INTEGER NOT NULL,
	title VARCHAR(255) NOT NULL, dateTime DATETIME NOT NULL, capacity INTEGER NOT NULL,
	createdAt DATETIME NOT NULL, updatedAt DATETIME NOT NULL);
CREATE TABLE ClassClients (createdAt DATETIME NOT NULL, updatedAt DATETIME NOT NULL,
	clientId INTEGER NOT NULL, classId INTEGER NOT NULL);

INSERT INTO Trainers VALUES (3, 'Anna', 'yoga', 'anna@gym.test', '2024-05-01 10:00:00.000 +00:00', '2024-05-01 10:00:00.000 +00:00');
INSERT INTO Clients VALUES (7, 'Ivan', 30, 'monthly', '2024-05-02 10:00:00.000 +00:00', '2024-05-02 10:00:00.000 +00:00');
INSERT INTO Clients VALUES (8, 'Olga', 41, 'annual', '2024-05-02 11:00:00.000 +00:00', '2024-05-02 11:00:00.000 +00:00');
INSERT INTO Classes VALUES (5, 3, 'Morning flow', '2024-06-01 08:00:00.000 +00:00', 10, '2024-05-03 10:00:00.000 +00:00', '2024-05-03 10:00:00.000 +00:00');
INSERT INTO ClassClients VALUES ('2024-05-04 10:00:00.000 +00:00', '2024-05-04 10:00:00.000 +00:00', 7, 5);
INSERT INTO ClassClients VALUES ('2024-05-04 10:00:00.000 +00:00', '2024-05-04 10:00:00.000 +00:00', 7, 5);
INSERT INTO ClassClients VALUES ('2024-05-04 10:00:00.000 +00:00', '2024-05-04 10:00:00.000 +00:00', 8, 5);
`

func TestRun(t *testing.T) {
	ctx := context.Background()

	legacy, err := sql.Open("sqlite3", config.SQLiteDSN(":memory:"))
	if err != nil {
		t.Fatalf("open legacy: %v", err)
	}
	legacy.SetMaxOpenConns(1)
	defer legacy.Close()
	if _, err := legacy.ExecContext(ctx, legacySchema); err != nil {
		t.Fatalf("legacy schema: %v", err)
	}

	target, err := bundb.Open(&config.Config{DBDriver: config.DriverSQLite, DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("open target: %v", err)
	}
	defer target.Close()

	if err := run(ctx, legacy, target); err != nil {
		t.Fatalf("run: %v", err)
	}
	// second run must be a no-op
	if err := run(ctx, legacy, target); err != nil {
		t.Fatalf("rerun: %v", err)
	}

	var classes []models.Class
	if err := target.NewSelect().Model(&classes).Relation("Trainer").Relation("Clients").Scan(ctx); err != nil {
		t.Fatalf("select classes: %v", err)
	}
	if len(classes) != 1 {
		t.Fatalf("classes = %d, want 1", len(classes))
	}
	cl := classes[0]
	if cl.ID != 5 || cl.Trainer == nil || cl.Trainer.ID != 3 || len(cl.Clients) != 2 {
		t.Fatalf("class = %+v", cl)
	}
	if want := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC); !cl.DateTime.Equal(want) {
		t.Fatalf("dateTime = %v, want %v", cl.DateTime, want)
	}
	if want := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC); !cl.CreatedAt.Equal(want) {
		t.Fatalf("createdAt = %v, want %v", cl.CreatedAt, want)
	}

	// new rows continue after the imported ids
	c := &models.Client{Name: "New", Age: 20, MembershipType: "trial"}
	if _, err := target.NewInsert().Model(c).Exec(ctx); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if c.ID <= 8 {
		t.Fatalf("new id = %d, want > 8", c.ID)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-06-01 08:00:00.000 +00:00", time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)},
		{"2024-06-01 10:00:00.000 +02:00", time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)},
		{"2024-06-01T08:00:00Z", time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)},
		{"2024-06-01 08:00:00", time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseTime(sql.NullString{String: tt.in, Valid: true})
		if err != nil || !got.Equal(tt.want) {
			t.Errorf("parseTime(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := parseTime(sql.NullString{String: "yesterday", Valid: true}); err == nil {
		t.Error("expected error for garbage")
	}
	if got, err := parseTime(sql.NullString{}); err != nil || !got.IsZero() {
		t.Errorf("null = %v, %v", got, err)
	}
}
