package handler

import (
	"github.com/Khushiyant/nibtara/internal/advisory"
	"github.com/Khushiyant/nibtara/internal/auth/dto"
	"github.com/Khushiyant/nibtara/internal/auth/service"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth         *service.AuthService
	registration *service.RegistrationService
	listing      *service.ListingService
	embedder     advisory.Embedder
}

func NewAuthHandler(auth *service.AuthService, registration *service.RegistrationService, listing *service.ListingService, embedder advisory.Embedder) *AuthHandler {
	if embedder == nil {
		embedder = advisory.Disabled{}
	}
	return &AuthHandler{
		auth:         auth,
		registration: registration,
		listing:      listing,
		embedder:     embedder,
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return unauthorizedOnInvalid(invalidBody())
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	pair, err := h.auth.Login(c.UserContext(), input)
	if err != nil {
		return unauthorizedOnInvalid(err)
	}
	return c.Status(fiber.StatusOK).JSON(pair)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input dto.LogoutInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return invalidBody()
		}
	}

	caller := currentAccount(c)
	if input.All {
		if _, err := h.auth.LogoutAll(c.UserContext(), caller); err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "OK, goodbye, all refresh tokens blacklisted"})
	}

	if err := h.auth.Logout(c.UserContext(), caller, input.RefreshToken); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "OK, goodbye"})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return unauthorizedOnInvalid(invalidBody())
	}

	access, err := h.auth.Refresh(c.UserContext(), input)
	if err != nil {
		return unauthorizedOnInvalid(err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.AccessTokenResponse{AccessToken: access})
}

func (h *AuthHandler) RegisterClient(c *fiber.Ctx) error {
	var input dto.RegisterClientInput
	if err := c.BodyParser(&input); err != nil {
		return unauthorizedOnInvalid(invalidBody())
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	_, pair, err := h.registration.RegisterClient(c.UserContext(), input)
	if err != nil {
		return unauthorizedOnInvalid(err)
	}
	return c.Status(fiber.StatusCreated).JSON(pair)
}

func (h *AuthHandler) RegisterLawyer(c *fiber.Ctx) error {
	var input dto.RegisterLawyerInput
	if err := c.BodyParser(&input); err != nil {
		return unauthorizedOnInvalid(invalidBody())
	}

	lawyer, err := h.registration.RegisterLawyer(c.UserContext(), currentAccount(c), input)
	if err != nil {
		return unauthorizedOnInvalid(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LawyerRegisteredResponse{
		Message: "Lawyer registered successfully",
		Lawyer:  dto.NewLawyerOutput(*lawyer),
	})
}

func (h *AuthHandler) RegisterJudge(c *fiber.Ctx) error {
	var input dto.RegisterJudgeInput
	if err := c.BodyParser(&input); err != nil {
		return unauthorizedOnInvalid(invalidBody())
	}

	judge, err := h.registration.RegisterJudge(c.UserContext(), currentAccount(c), input)
	if err != nil {
		return unauthorizedOnInvalid(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.JudgeRegisteredResponse{
		Message: "Judge registered successfully",
		Judge:   dto.NewJudgeOutput(*judge),
	})
}
