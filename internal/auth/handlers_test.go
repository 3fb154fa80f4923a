package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
	"golang.org/x/crypto/bcrypt"
)

func newAuthApp(t *testing.T, mock pgxmock.PgxPoolIface) *fiber.App {
	t.Helper()
	app := fiber.New()
	svc := NewService("secret", mock)
	RegisterRoutes(app.Group("/account"), svc, CookieSettings{}, CookieAuth("secret"))
	return app
}

func TestSignupHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "alice_01", "alice@example.com", pgxmock.AnyArg(), "alice_01").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	app := newAuthApp(t, mock)

	body, _ := json.Marshal(SignupRequest{Username: "alice_01", Email: "alice@example.com", Password: "password1"})
	req := httptest.NewRequest(http.MethodPost, "/account/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status: %v %v", resp.StatusCode, err)
	}
}

func TestSignupHandlerBadRequest(t *testing.T) {
	app := newAuthApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/account/signup", bytes.NewReader([]byte(`{"username":"ab"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestLoginHandlerSetsCookie(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	mock.ExpectQuery(`SELECT id, username, email, password_hash, common_name, created_at`).
		WithArgs("alice_01").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "common_name", "created_at"}).
			AddRow("user-1", "alice_01", "alice@example.com", string(hash), "Alice", time.Now()))

	app := newAuthApp(t, mock)

	body, _ := json.Marshal(LoginRequest{Username: "alice_01", Password: "password1"})
	req := httptest.NewRequest(http.MethodPost, "/account/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("login status: %v", err)
	}

	var sessionCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == CookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatalf("expected session cookie")
	}
	if !sessionCookie.HttpOnly {
		t.Fatalf("expected httpOnly cookie")
	}
}

func TestLoginHandlerMissingFields(t *testing.T) {
	app := newAuthApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/account/login", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestLogoutHandlerClearsCookie(t *testing.T) {
	app := newAuthApp(t, nil)
	svc := NewService("secret", nil)
	token, _ := svc.signToken("user-1", tokenTTL)

	req := httptest.NewRequest(http.MethodPost, "/account/logout", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status: %v", err)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == CookieName && cookie.Value != "" {
			t.Fatalf("expected cleared cookie")
		}
	}
}

func TestLogoutHandlerRequiresAuth(t *testing.T) {
	app := newAuthApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/account/logout", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized")
	}
}
