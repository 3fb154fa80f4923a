package account

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

var errNoRows = errors.New("no rows")

func fakeAuth(c *fiber.Ctx) error {
	c.Locals("user_id", "user-1")
	return c.Next()
}

func newAccountApp(mock pgxmock.PgxPoolIface) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/account"), NewService(mock), fakeAuth)
	return app
}

func TestViewHandler(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT username, common_name, biography, avatar_url, created_at`).
		WithArgs("bob_02", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"username", "common_name", "biography", "avatar_url", "created_at"}).
			AddRow("bob_02", "Bob", "hello", "", time.Now()))

	app := newAccountApp(mock)

	req := httptest.NewRequest(http.MethodPost, "/account/view", bytes.NewReader([]byte(`{"username":"bob_02"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("view status: %v", err)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if profile.Username != "bob_02" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestViewHandlerNotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT username, common_name, biography, avatar_url, created_at`).
		WithArgs("nobody99", "user-1").
		WillReturnError(errNoRows)

	app := newAccountApp(mock)

	req := httptest.NewRequest(http.MethodPost, "/account/view", bytes.NewReader([]byte(`{"username":"nobody99"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found")
	}
}

func TestUpdateHandlerTooLong(t *testing.T) {
	app := newAccountApp(nil)

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	body, _ := json.Marshal(UpdateRequest{Biography: string(long)})
	req := httptest.NewRequest(http.MethodPost, "/account/update", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestDeleteHandlerMissingPassword(t *testing.T) {
	app := newAccountApp(nil)

	req := httptest.NewRequest(http.MethodPost, "/account/delete", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}
