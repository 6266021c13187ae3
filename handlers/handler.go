package handlers

import (
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db     *bun.DB
	log    *zap.Logger
	JWTKey []byte
}

// New creates a Handler with the given database connection and JWT signing key.
// A nil key disables signin and leaves write routes unauthenticated.
func New(db *bun.DB, jwtKey []byte, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{db: db, log: log, JWTKey: jwtKey}
}
