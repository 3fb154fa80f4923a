package post

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/new", authMiddleware, func(c *fiber.Ctx) error {
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		ref, err := svc.Create(c.Context(), c.Locals("user_id").(string), req)
		if errors.Is(err, ErrBadContent) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "parent post not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(ref)
	})

	r.Post("/delete", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			PostID string `json:"postId"`
		}
		if err := c.BodyParser(&body); err != nil || body.PostID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "postId required")
		}
		err := svc.Delete(c.Context(), c.Locals("user_id").(string), body.PostID)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusOK)
	})

	r.Post("/like", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			PostID string `json:"postId"`
		}
		if err := c.BodyParser(&body); err != nil || body.PostID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "postId required")
		}
		err := svc.Like(c.Context(), c.Locals("user_id").(string), body.PostID)
		if errors.Is(err, ErrAlreadyLiked) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusOK)
	})

	r.Post("/dislike", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			PostID string `json:"postId"`
		}
		if err := c.BodyParser(&body); err != nil || body.PostID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "postId required")
		}
		if err := svc.Unlike(c.Context(), c.Locals("user_id").(string), body.PostID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusOK)
	})

	r.Post("/count", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Username string `json:"username"`
		}
		if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		count, err := svc.Count(c.Context(), c.Locals("user_id").(string), body.Username)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"postCount": count})
	})

	r.Post("/view", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			PostID string `json:"postId"`
		}
		if err := c.BodyParser(&body); err != nil || body.PostID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "postId required")
		}
		detail, err := svc.View(c.Context(), c.Locals("user_id").(string), body.PostID)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(detail)
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
		if errors.Is(err, ErrBadCategory) || errors.Is(err, ErrNoSelector) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"posts": refs})
	})
}
