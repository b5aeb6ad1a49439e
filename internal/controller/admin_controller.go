package controller

import (
	"gym-membership-be/internal/dto"
	"gym-membership-be/internal/pkg/apperror"
	"gym-membership-be/internal/pkg/serverutils"
	"gym-membership-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, adminAuth fiber.Handler)

	ListMembers(ctx *fiber.Ctx) error
	GetMember(ctx *fiber.Ctx) error
	CreateMember(ctx *fiber.Ctx) error
	UpdateMember(ctx *fiber.Ctx) error
	DeleteMember(ctx *fiber.Ctx) error
	SweepExpirations(ctx *fiber.Ctx) error

	ListRenewals(ctx *fiber.Ctx) error
	DecideRenewal(ctx *fiber.Ctx) error
	DeleteRenewal(ctx *fiber.Ctx) error

	DashboardSummary(ctx *fiber.Ctx) error
	StatisticsSummary(ctx *fiber.Ctx) error
	MembersStatistics(ctx *fiber.Ctx) error
	WeeklyRevenue(ctx *fiber.Ctx) error
	MembershipLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router, adminAuth fiber.Handler) {
	h := r.Group("/admin", adminAuth)

	// Members
	h.Get("/members", c.ListMembers)
	h.Post("/members", c.CreateMember)
	h.Post("/members/sweep", c.SweepExpirations)
	h.Get("/members/:id", c.GetMember)
	h.Put("/members/:id", c.UpdateMember)
	h.Delete("/members/:id", c.DeleteMember)

	// Renewals
	h.Get("/renewals", c.ListRenewals)
	h.Post("/renewals/:id", c.DecideRenewal)
	h.Delete("/renewals/:id", c.DeleteRenewal)

	// Statistics
	h.Get("/dashboard-summary", c.DashboardSummary)
	h.Get("/statistics-summary", c.StatisticsSummary)
	h.Get("/members-statistics", c.MembersStatistics)
	h.Get("/weekly-revenue", c.WeeklyRevenue)
	h.Get("/membership-logs", c.MembershipLogs)
}

func memberIdParam(ctx *fiber.Ctx) (uint, error) {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperror.Validation(apperror.Violation{Field: "id", Message: "id must be a positive integer"})
	}
	return uint(id), nil
}

func uuidParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.Validation(apperror.Violation{Field: "id", Message: "id must be a valid UUID"})
	}
	return id, nil
}

// ============================================================================
// Members
// ============================================================================

func (c *adminController) ListMembers(ctx *fiber.Ctx) error {
	var query dto.MemberListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return apperror.Validation(apperror.Violation{Field: "query", Message: "invalid query parameters"})
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.service.ListMembers(ctx.UserContext(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Members retrieved", res))
}

func (c *adminController) GetMember(ctx *fiber.Ctx) error {
	id, err := memberIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetMember(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Member retrieved", res))
}

// CreateMember validates inside the lifecycle engine so every violation,
// including date and student-number rules, is reported together.
func (c *adminController) CreateMember(ctx *fiber.Ctx) error {
	var req dto.RegisterMemberRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation(apperror.Violation{Field: "body", Message: "request body is not valid JSON"})
	}

	res, err := c.service.RegisterMember(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Member registered successfully", res))
}

func (c *adminController) UpdateMember(ctx *fiber.Ctx) error {
	id, err := memberIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateMemberRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation(apperror.Violation{Field: "body", Message: "request body is not valid JSON"})
	}

	res, err := c.service.UpdateMember(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Member updated successfully", res))
}

func (c *adminController) DeleteMember(ctx *fiber.Ctx) error {
	id, err := memberIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteMember(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Member deleted successfully", nil))
}

func (c *adminController) SweepExpirations(ctx *fiber.Ctx) error {
	res, err := c.service.SweepExpirations(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Expiration sweep completed", res))
}

// ============================================================================
// Renewals
// ============================================================================

func (c *adminController) ListRenewals(ctx *fiber.Ctx) error {
	res, err := c.service.ListRenewals(ctx.UserContext(), ctx.Query("status"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Renewal requests retrieved", res))
}

func (c *adminController) DecideRenewal(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx)
	if err != nil {
		return err
	}

	var req dto.RenewalDecisionRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.DecideRenewal(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Renewal request "+res.Status, res))
}

func (c *adminController) DeleteRenewal(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteRenewal(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Renewal request deleted", nil))
}

// ============================================================================
// Statistics
// ============================================================================

func (c *adminController) DashboardSummary(ctx *fiber.Ctx) error {
	res, err := c.service.DashboardSummary(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard summary", res))
}

func (c *adminController) StatisticsSummary(ctx *fiber.Ctx) error {
	res, err := c.service.StatisticsSummary(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Statistics summary", res))
}

func (c *adminController) MembersStatistics(ctx *fiber.Ctx) error {
	res, err := c.service.RevenueSummary(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Members statistics", res))
}

func (c *adminController) WeeklyRevenue(ctx *fiber.Ctx) error {
	res, err := c.service.WeeklyRevenue(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Weekly revenue", res))
}

func (c *adminController) MembershipLogs(ctx *fiber.Ctx) error {
	res, err := c.service.MembershipLogs(ctx.UserContext(), ctx.QueryInt("days", 7))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Membership logs", res))
}
