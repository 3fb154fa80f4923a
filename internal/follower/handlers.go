package follower

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/follow", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Username string `json:"username"`
		}
		if err := c.BodyParser(&body); err != nil || body.Username == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username required")
		}
		err := svc.Follow(c.Context(), c.Locals("user_id").(string), body.Username)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, ErrAlreadyFollowing) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if errors.Is(err, ErrSelfFollow) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusOK)
	})

	r.Post("/unfollow", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Username string `json:"username"`
		}
		if err := c.BodyParser(&body); err != nil || body.Username == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username required")
		}
		if err := svc.Unfollow(c.Context(), c.Locals("user_id").(string), body.Username); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusOK)
	})

	r.Post("/ask", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Username string `json:"username"`
		}
		if err := c.BodyParser(&body); err != nil || body.Username == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username required")
		}
		rel, err := svc.Ask(c.Context(), c.Locals("user_id").(string), body.Username)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(rel)
	})

	r.Post("/count", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Username string `json:"username"`
		}
		if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		counts, err := svc.Count(c.Context(), c.Locals("user_id").(string), body.Username)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(counts)
	})

	r.Post("/list", authMiddleware, func(c *fiber.Ctx) error {
		var req ListRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if req.Page < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "page must be non-negative")
		}
		refs, err := svc.List(c.Context(), c.Locals("user_id").(string), req)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, ErrBadCategory) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"users": refs})
	})
}
