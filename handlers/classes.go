package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	bundb "github.com/padraicbc/gymapi/db"
	"github.com/padraicbc/gymapi/models"
)

const (
	errCreateClass     = "failed to create class"
	errTrainerNotFound = "trainer not found"
)

type createClassRequest struct {
	Title     string     `json:"title" validate:"required"`
	TrainerID *int64     `json:"trainerId"`
	DateTime  *time.Time `json:"dateTime" validate:"required"`
	Capacity  *int       `json:"capacity" validate:"required,gte=0"`
}

func (r *createClassRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

type enrollRequest struct {
	ClientID *int64 `json:"clientId"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Classes returns all classes with their trainer and enrolled clients.
func (h *Handler) Classes(c echo.Context) error {
	classes := make([]models.Class, 0)
	err := h.db.NewSelect().Model(&classes).
		Relation("Trainer").
		Relation("Clients").
		OrderExpr("cl.id ASC").
		Scan(c.Request().Context())
	if err != nil {
		return h.fail("list classes", err, http.StatusInternalServerError, "internal error")
	}

	for i := range classes {
		if classes[i].Clients == nil {
			classes[i].Clients = []models.Client{}
		}
	}
	return c.JSON(http.StatusOK, classes)
}

// CreateClass inserts a class for an existing trainer.
// The trainer is checked before the remaining fields, so a missing trainerId is a 404.
func (h *Handler) CreateClass(c echo.Context) error {
	ctx := c.Request().Context()

	var req createClassRequest
	if err := c.Bind(&req); err != nil {
		return h.fail("create class", err, http.StatusBadRequest, errCreateClass)
	}
	if req.TrainerID == nil {
		return echo.NewHTTPError(http.StatusNotFound, errTrainerNotFound)
	}

	exists, err := h.db.NewSelect().Model((*models.Trainer)(nil)).
		Where("t.id = ?", *req.TrainerID).
		Exists(ctx)
	if err != nil {
		return h.fail("create class", err, http.StatusBadRequest, errCreateClass)
	}
	if !exists {
		return echo.NewHTTPError(http.StatusNotFound, errTrainerNotFound)
	}

	req.normalize()
	if err := c.Validate(&req); err != nil {
		return h.fail("create class", err, http.StatusBadRequest, errCreateClass)
	}

	class := &models.Class{
		TrainerID: *req.TrainerID,
		Title:     req.Title,
		DateTime:  req.DateTime.UTC(),
		Capacity:  *req.Capacity,
	}
	if _, err := h.db.NewInsert().Model(class).Exec(ctx); err != nil {
		if bundb.IsForeignKey(err) {
			return echo.NewHTTPError(http.StatusNotFound, errTrainerNotFound)
		}
		return h.fail("create class", err, http.StatusBadRequest, errCreateClass)
	}

	class.Clients = []models.Client{}
	return c.JSON(http.StatusCreated, class)
}

// ClassClients returns the participants of one class.
func (h *Handler) ClassClients(c echo.Context) error {
	classID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, bundb.ErrClassNotFound.Error())
	}

	clients, err := bundb.Participants(c.Request().Context(), h.db, classID)
	if err != nil {
		if errors.Is(err, bundb.ErrClassNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return h.fail("list participants", err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, clients)
}

// Enroll adds a client to a class. A missing clientId is reported as an
// unknown client once the class has been found.
func (h *Handler) Enroll(c echo.Context) error {
	classID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, bundb.ErrClassNotFound.Error())
	}

	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return h.fail("enroll", err, http.StatusBadRequest, "invalid request body")
	}
	var clientID int64
	if req.ClientID != nil {
		clientID = *req.ClientID
	}

	err = bundb.Enroll(c.Request().Context(), h.db, classID, clientID)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, messageResponse{Message: "client enrolled"})
	case errors.Is(err, bundb.ErrClassNotFound), errors.Is(err, bundb.ErrClientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, bundb.ErrAlreadyEnrolled), errors.Is(err, bundb.ErrClassFull):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return h.fail("enroll", err, http.StatusBadRequest, "failed to enroll client")
	}
}
