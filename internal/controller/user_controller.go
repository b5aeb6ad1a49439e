package controller

import (
	"gym-membership-be/internal/dto"
	"gym-membership-be/internal/pkg/serverutils"
	"gym-membership-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router, memberAuth fiber.Handler)
	Me(ctx *fiber.Ctx) error
	RequestRenewal(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IMemberService
}

func NewUserController(service service.IMemberService) IUserController {
	return &userController{service: service}
}

func (c *userController) RegisterRoutes(r fiber.Router, memberAuth fiber.Handler) {
	h := r.Group("/user", memberAuth)
	h.Get("/me", c.Me)
	h.Post("/renewals", c.RequestRenewal)
}

func (c *userController) Me(ctx *fiber.Ctx) error {
	memberId, ok := serverutils.MemberID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	res, err := c.service.Profile(ctx.UserContext(), memberId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User profile", res))
}

func (c *userController) RequestRenewal(ctx *fiber.Ctx) error {
	memberId, ok := serverutils.MemberID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.RenewalRequestCreate
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.RequestRenewal(ctx.UserContext(), memberId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Renewal request submitted", res))
}
