package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/padraicbc/gymapi/models"
)

const errCreateClient = "failed to create client"

type createClientRequest struct {
	Name           string `json:"name" validate:"required"`
	Age            *int   `json:"age" validate:"required"`
	MembershipType string `json:"membershipType" validate:"required"`
}

func (r *createClientRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.MembershipType = strings.TrimSpace(r.MembershipType)
}

type importResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Clients returns all clients.
func (h *Handler) Clients(c echo.Context) error {
	clients := make([]models.Client, 0)
	err := h.db.NewSelect().Model(&clients).
		OrderExpr("c.id ASC").
		Scan(c.Request().Context())
	if err != nil {
		return h.fail("list clients", err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, clients)
}

// CreateClient inserts a new client.
func (h *Handler) CreateClient(c echo.Context) error {
	var req createClientRequest
	if err := bindValid(c, &req); err != nil {
		return h.fail("create client", err, http.StatusBadRequest, errCreateClient)
	}

	client := &models.Client{
		Name:           req.Name,
		Age:            *req.Age,
		MembershipType: req.MembershipType,
	}
	if _, err := h.db.NewInsert().Model(client).Exec(c.Request().Context()); err != nil {
		return h.fail("create client", err, http.StatusBadRequest, errCreateClient)
	}

	return c.JSON(http.StatusCreated, client)
}

// ImportClients bulk-creates clients from an uploaded .xlsx workbook.
// The first sheet is read; row 1 is a header and columns A-C hold
// name, age and membership type.
func (h *Handler) ImportClients(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return h.fail("import clients", err, http.StatusBadRequest, "file is required")
	}
	src, err := fh.Open()
	if err != nil {
		return h.fail("import clients", err, http.StatusBadRequest, "failed to read file")
	}
	defer src.Close()

	f, err := excelize.OpenReader(src)
	if err != nil {
		return h.fail("import clients", err, http.StatusBadRequest, "failed to read workbook")
	}
	defer func() {
		if err := f.Close(); err != nil {
			h.log.Warn("close workbook", zap.Error(err))
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return h.fail("import clients", err, http.StatusBadRequest, "failed to read workbook")
	}

	clients, skipped := clientsFromRows(rows)
	if len(clients) > 0 {
		if _, err := h.db.NewInsert().Model(&clients).Exec(c.Request().Context()); err != nil {
			return h.fail("import clients", err, http.StatusBadRequest, "failed to import clients")
		}
	}

	h.log.Info("clients imported",
		zap.String("file", fh.Filename),
		zap.Int("imported", len(clients)),
		zap.Int("skipped", skipped),
	)
	return c.JSON(http.StatusCreated, importResult{Imported: len(clients), Skipped: skipped})
}

// clientsFromRows converts sheet rows, skipping the header and any row
// with a blank field or a non-integer age.
func clientsFromRows(rows [][]string) ([]models.Client, int) {
	clients := make([]models.Client, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 3 {
			skipped++
			continue
		}
		name := strings.TrimSpace(row[0])
		membership := strings.TrimSpace(row[2])
		age, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if name == "" || membership == "" || err != nil {
			skipped++
			continue
		}
		clients = append(clients, models.Client{Name: name, Age: age, MembershipType: membership})
	}
	return clients, skipped
}
