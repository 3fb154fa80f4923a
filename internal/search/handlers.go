package search

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/post", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Content string `json:"content"`
			Page    int    `json:"page"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if body.Page < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "page must be non-negative")
		}
		refs, err := svc.Posts(c.Context(), body.Content, body.Page)
		if errors.Is(err, ErrBadQuery) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"posts": refs})
	})

	r.Post("/account", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Username string `json:"username"`
			Page     int    `json:"page"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if body.Page < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "page must be non-negative")
		}
		refs, err := svc.Accounts(c.Context(), body.Username, body.Page)
		if errors.Is(err, ErrBadQuery) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"users": refs})
	})
}
