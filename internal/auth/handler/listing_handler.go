package handler

import (
	"github.com/Khushiyant/nibtara/internal/auth/dto"
	"github.com/gofiber/fiber/v2"
)

func (h *AuthHandler) ListLawyers(c *fiber.Ctx) error {
	var q dto.LawyerQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody()
	}

	out, err := h.listing.ListLawyers(c.UserContext(), currentAccount(c), q)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *AuthHandler) ListPreTrials(c *fiber.Ctx) error {
	var q dto.PreTrialQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody()
	}

	out, err := h.listing.ListOwnPreTrials(c.UserContext(), currentAccount(c), q)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(out)
}
