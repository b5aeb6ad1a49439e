package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"gym-membership-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, app *fiber.App, method, path, token string) (int, BaseResponse[any]) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/validation", func(ctx *fiber.Ctx) error {
		return apperror.Validation(
			apperror.Violation{Field: "first_name", Message: "first_name is required"},
			apperror.Violation{Field: "gym_plan", Message: "gym_plan is required"},
		)
	})
	app.Get("/missing", func(ctx *fiber.Ctx) error { return apperror.NotFound("member") })
	app.Get("/conflict", func(ctx *fiber.Ctx) error { return apperror.Conflict("already pending") })
	app.Get("/storage", func(ctx *fiber.Ctx) error { return apperror.Storage("find member", errors.New("conn reset")) })
	app.Get("/throttled", func(ctx *fiber.Ctx) error { return apperror.RateLimited("slow down") })

	status, body := decode(t, app, "GET", "/validation", "")
	assert.Equal(t, 400, status)
	assert.False(t, body.Success)
	assert.Len(t, body.Errors, 2)

	status, body = decode(t, app, "GET", "/missing", "")
	assert.Equal(t, 404, status)
	assert.Equal(t, "member not found", body.Message)

	status, _ = decode(t, app, "GET", "/conflict", "")
	assert.Equal(t, 409, status)

	status, body = decode(t, app, "GET", "/storage", "")
	assert.Equal(t, 503, status)
	assert.NotContains(t, body.Message, "conn reset")

	status, _ = decode(t, app, "GET", "/throttled", "")
	assert.Equal(t, 429, status)
}

func TestJwtMiddleware(t *testing.T) {
	const secret = "test-secret"
	now := time.Now()

	app := fiber.New()
	app.Get("/me", JwtMiddleware(secret, RoleMember), func(ctx *fiber.Ctx) error {
		id, ok := MemberID(ctx)
		if !ok {
			return fiber.ErrUnauthorized
		}
		return ctx.JSON(SuccessResponse("ok", id))
	})

	memberToken, err := SignToken(secret, 42, RoleMember, now, time.Hour)
	require.NoError(t, err)
	adminToken, err := SignToken(secret, 0, RoleAdmin, now, time.Hour)
	require.NoError(t, err)
	expired, err := SignToken(secret, 42, RoleMember, now.Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	forged, err := SignToken("other-secret", 42, RoleMember, now, time.Hour)
	require.NoError(t, err)

	status, body := decode(t, app, "GET", "/me", memberToken)
	assert.Equal(t, 200, status)
	assert.Equal(t, float64(42), body.Data)

	status, _ = decode(t, app, "GET", "/me", adminToken)
	assert.Equal(t, 403, status)

	for _, token := range []string{"", expired, forged} {
		status, _ = decode(t, app, "GET", "/me", token)
		assert.Equal(t, 401, status)
	}
}
