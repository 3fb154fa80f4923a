package storage

import (
	"github.com/sevora/ramble/internal/account"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, s3 *Client, accounts *account.Service, authMiddleware fiber.Handler) {
	r.Post("/avatar", authMiddleware, func(c *fiber.Ctx) error {
		if s3 == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "object storage not configured")
		}

		header, err := c.FormFile("avatar")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "avatar file required")
		}

		file, err := header.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "avatar file unreadable")
		}
		defer file.Close()

		userID := c.Locals("user_id").(string)
		key := "avatars/" + userID
		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		if err := s3.Upload(c.Context(), key, contentType, file, header.Size); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		url := s3.FileURL(key)
		if err := accounts.SetAvatarURL(c.Context(), userID, url); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"url": url})
	})
}
