package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/gymapi/models"
)

const errCreateTrainer = "failed to create trainer"

type createTrainerRequest struct {
	Name           string `json:"name" validate:"required"`
	Specialization string `json:"specialization" validate:"required"`
	Email          string `json:"email" validate:"required"`
}

func (r *createTrainerRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Specialization = strings.TrimSpace(r.Specialization)
	r.Email = strings.TrimSpace(r.Email)
}

// Trainers returns all trainers.
func (h *Handler) Trainers(c echo.Context) error {
	trainers := make([]models.Trainer, 0)
	err := h.db.NewSelect().Model(&trainers).
		OrderExpr("t.id ASC").
		Scan(c.Request().Context())
	if err != nil {
		return h.fail("list trainers", err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, trainers)
}

// CreateTrainer inserts a new trainer.
func (h *Handler) CreateTrainer(c echo.Context) error {
	var req createTrainerRequest
	if err := bindValid(c, &req); err != nil {
		return h.fail("create trainer", err, http.StatusBadRequest, errCreateTrainer)
	}

	trainer := &models.Trainer{
		Name:           req.Name,
		Specialization: req.Specialization,
		Email:          req.Email,
	}
	if _, err := h.db.NewInsert().Model(trainer).Exec(c.Request().Context()); err != nil {
		return h.fail("create trainer", err, http.StatusBadRequest, errCreateTrainer)
	}

	return c.JSON(http.StatusCreated, trainer)
}
