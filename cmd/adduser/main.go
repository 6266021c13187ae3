// cmd/adduser/main.go
// Creates or updates a staff user allowed to call the write endpoints.
//
// Usage:
//
//	go run ./cmd/adduser -username coach -password testing
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/padraicbc/gymapi/config"
	bundb "github.com/padraicbc/gymapi/db"
	"github.com/padraicbc/gymapi/handlers"
	"github.com/padraicbc/gymapi/models"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	hash, err := handlers.HashPasswordForUser(*username, *password)
	if err != nil {
		log.Fatal("both -username and -password are required: ", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	ctx := context.Background()
	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables: ", err)
	}

	if err := upsertUser(ctx, db, &models.User{Username: *username, Password: hash}); err != nil {
		log.Fatal("insert user: ", err)
	}

	fmt.Printf("user %q saved\n", *username)
}

// upsertUser inserts user or replaces the password of an existing username.
func upsertUser(ctx context.Context, db *bun.DB, user *models.User) error {
	q := db.NewInsert().Model(user)
	if db.Dialect().Name() == dialect.MySQL {
		q = q.On("DUPLICATE KEY UPDATE password = VALUES(password)")
	} else {
		q = q.On("CONFLICT (username) DO UPDATE").Set("password = EXCLUDED.password")
	}
	_, err := q.Exec(ctx)
	return err
}
