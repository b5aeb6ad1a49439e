package controller

import (
	"gym-membership-be/internal/dto"
	"gym-membership-be/internal/pkg/serverutils"
	"gym-membership-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	CodeLogin(ctx *fiber.Ctx) error
	AdminLogin(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Post("/user/register", c.Register)
	r.Post("/user/login", c.Login)
	r.Post("/user/admin-login", c.CodeLogin)
	r.Post("/admin/login", c.AdminLogin)
}

// Register validates inside the lifecycle engine so password, plan and
// duplicate-email problems are reported together.
func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.SelfRegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "request body is not valid JSON")
	}

	res, err := c.service.SelfRegister(ctx.UserContext(), ctx.IP(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(
		"Registration successful! Your Member ID is "+res.UniqueCode+". Please login.", res))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), ctx.IP(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Welcome back, "+res.Member.FirstName+"!", res))
}

func (c *authController) CodeLogin(ctx *fiber.Ctx) error {
	var req dto.CodeLoginRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CodeLogin(ctx.UserContext(), ctx.IP(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Welcome back, "+res.Member.FirstName+"!", res))
}

func (c *authController) AdminLogin(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.AdminLogin(ctx.UserContext(), ctx.IP(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Admin login successful", res))
}
