package search

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func fakeAuth(c *fiber.Ctx) error {
	c.Locals("user_id", "user-1")
	return c.Next()
}

func newSearchApp(mock pgxmock.PgxPoolIface) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/search"), NewService(mock), fakeAuth)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func TestSearchPostHandler(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT id FROM posts\s+WHERE content ILIKE`).
		WithArgs("coffee", PageSize, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("post-1"))

	app := newSearchApp(mock)
	resp := postJSON(t, app, "/search/post", `{"content":"coffee","page":0}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok, got %d", resp.StatusCode)
	}

	var body struct {
		Posts []PostReference `json:"posts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Posts) != 1 || body.Posts[0].PostID != "post-1" {
		t.Fatalf("unexpected posts: %+v", body.Posts)
	}
}

func TestSearchPostHandlerEmptyQuery(t *testing.T) {
	app := newSearchApp(nil)
	resp := postJSON(t, app, "/search/post", `{"content":"","page":0}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}

func TestSearchAccountHandler(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT username FROM users\s+WHERE username ILIKE`).
		WithArgs("ali", PageSize, 0).
		WillReturnRows(pgxmock.NewRows([]string{"username"}).AddRow("alice_01"))

	app := newSearchApp(mock)
	resp := postJSON(t, app, "/search/account", `{"username":"ali","page":0}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok, got %d", resp.StatusCode)
	}

	var body struct {
		Users []UserReference `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Users) != 1 || body.Users[0].Username != "alice_01" {
		t.Fatalf("unexpected users: %+v", body.Users)
	}
}
