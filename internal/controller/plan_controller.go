// Controller for the public pricing table
package controller

import (
	"gym-membership-be/internal/pkg/serverutils"
	"gym-membership-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PlanController interface {
	RegisterRoutes(api fiber.Router)
}

type planController struct {
	memberService service.IMemberService
}

func NewPlanController(memberService service.IMemberService) PlanController {
	return &planController{
		memberService: memberService,
	}
}

func (c *planController) RegisterRoutes(api fiber.Router) {
	api.Get("/plans", c.GetAllPlans)
}

// GetAllPlans returns the price of every member type and plan pair.
func (c *planController) GetAllPlans(ctx *fiber.Ctx) error {
	plans, err := c.memberService.Pricing(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", plans))
}
