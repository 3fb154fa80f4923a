package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieSettings controls the attributes of the session cookie. Secure
// must be on whenever the client is served over https.
type CookieSettings struct {
	Secure bool
}

func RegisterRoutes(r fiber.Router, svc *Service, cookies CookieSettings, authMiddleware fiber.Handler) {
	r.Post("/signup", func(c *fiber.Ctx) error {
		var req SignupRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		_, err := svc.Signup(c.Context(), req)
		if errors.Is(err, ErrUsernameTaken) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if errors.Is(err, ErrInvalidSignup) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusCreated)
	})

	r.Post("/login", func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil || req.Username == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username and password required")
		}
		user, token, err := svc.Login(c.Context(), req)
		if errors.Is(err, ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    token,
			HTTPOnly: true,
			Secure:   cookies.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
			Expires:  time.Now().Add(tokenTTL),
		})
		return c.JSON(fiber.Map{"username": user.Username, "userCommonName": user.CommonName})
	})

	r.Post("/logout", authMiddleware, func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    "",
			HTTPOnly: true,
			Secure:   cookies.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
			Expires:  time.Now().Add(-time.Hour),
		})
		return c.SendStatus(fiber.StatusOK)
	})
}
