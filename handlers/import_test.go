package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/padraicbc/gymapi/models"
)

func workbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func upload(t *testing.T, e *echo.Echo, field string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, "clients.xlsx")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	h := http.Header{}
	h.Set(echo.HeaderContentType, w.FormDataContentType())
	return request(e, http.MethodPost, "/clients/import", &body, h)
}

func TestImportClients(t *testing.T) {
	e, db := newServer(t, nil)
	data := workbook(t, [][]interface{}{
		{"name", "age", "membershipType"},
		{"Olga", 34, "annual"},
		{"Petr", "x", "monthly"},
		{"", 20, "monthly"},
		{" Sasha ", "19", " trial "},
	})

	rec := upload(t, e, "file", data)
	expect(t, rec, http.StatusCreated, "")
	var res struct {
		Imported int `json:"imported"`
		Skipped  int `json:"skipped"`
	}
	decode(t, rec, &res)
	if res.Imported != 2 || res.Skipped != 2 {
		t.Fatalf("imported=%d skipped=%d, want 2 and 2", res.Imported, res.Skipped)
	}
	if n := count(t, db, (*models.Client)(nil)); n != 2 {
		t.Fatalf("clients = %d, want 2", n)
	}

	var list []models.Client
	decode(t, doJSON(e, http.MethodGet, "/clients", ""), &list)
	if list[0].Name != "Olga" || list[0].Age != 34 || list[1].Name != "Sasha" || list[1].MembershipType != "trial" {
		t.Fatalf("listing = %+v", list)
	}
}

func TestImportClientsBadUpload(t *testing.T) {
	e, db := newServer(t, nil)

	expect(t, upload(t, e, "other", []byte("x")), http.StatusBadRequest, "file is required")
	expect(t, upload(t, e, "file", []byte("not a workbook")), http.StatusBadRequest, "failed to read workbook")
	if n := count(t, db, (*models.Client)(nil)); n != 0 {
		t.Fatalf("clients = %d, want 0", n)
	}
}
