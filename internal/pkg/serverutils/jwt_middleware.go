package serverutils

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"

	LocalMemberID = "member_id"
	LocalRole     = "role"
)

type Claims struct {
	MemberId uint   `json:"member_id,omitempty"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SignToken issues an HS256 token for the given subject.
func SignToken(secret string, memberId uint, role string, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		MemberId: memberId,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// JwtMiddleware admits requests carrying a valid bearer token whose role is
// one of roles (any role when none given).
func JwtMiddleware(secret string, roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}
		tokenStr := authHeader[7:]

		var claims Claims
		token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		if len(roles) > 0 && !contains(roles, claims.Role) {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden, "Forbidden"))
		}

		ctx.Locals(LocalMemberID, claims.MemberId)
		ctx.Locals(LocalRole, claims.Role)
		return ctx.Next()
	}
}

// MemberID reads the authenticated member id set by JwtMiddleware.
func MemberID(ctx *fiber.Ctx) (uint, bool) {
	id, ok := ctx.Locals(LocalMemberID).(uint)
	return id, ok && id != 0
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
