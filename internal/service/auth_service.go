package service

import (
	"context"
	"strings"
	"time"

	"gym-membership-be/internal/dto"
	"gym-membership-be/internal/entity"
	"gym-membership-be/internal/pkg/apperror"
	"gym-membership-be/internal/pkg/logger"
	"gym-membership-be/internal/pkg/ratelimit"
	"gym-membership-be/internal/pkg/serverutils"
	"gym-membership-be/internal/pkg/timeutil"
	"gym-membership-be/internal/repository/specification"
	"gym-membership-be/internal/repository/unitofwork"
	membershipEvents "gym-membership-be/pkg/membership/events"
	"gym-membership-be/pkg/membership/lifecycle"
	"gym-membership-be/pkg/membership/mapper"

	"golang.org/x/crypto/bcrypt"
)

const (
	msgInvalidCredentials = "Invalid email or password."
	msgNotActivated       = "This account has not been activated yet. Please activate your account first."
	msgTooManyAttempts    = "Too many attempts. Please try again later."
)

// AuthSettings carries the token and admin credential configuration.
type AuthSettings struct {
	JWTSecret         string
	TokenTTL          time.Duration
	AdminEmail        string
	AdminPasswordHash string
}

type IAuthService interface {
	SelfRegister(ctx context.Context, clientKey string, req *dto.SelfRegisterRequest) (*dto.MemberResponse, error)
	Login(ctx context.Context, clientKey string, req *dto.LoginRequest) (*dto.LoginResponse, error)
	CodeLogin(ctx context.Context, clientKey string, req *dto.CodeLoginRequest) (*dto.LoginResponse, error)
	AdminLogin(ctx context.Context, clientKey string, req *dto.AdminLoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	logger         logger.ILogger
	clock          timeutil.Clock
	loc            *time.Location
	engine         *lifecycle.Engine
	eventPublisher membershipEvents.Publisher
	limiter        *ratelimit.KeyedLimiter
	settings       AuthSettings
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	clock timeutil.Clock,
	loc *time.Location,
	engine *lifecycle.Engine,
	eventPublisher membershipEvents.Publisher,
	limiter *ratelimit.KeyedLimiter,
	settings AuthSettings,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		logger:         logger,
		clock:          clock,
		loc:            loc,
		engine:         engine,
		eventPublisher: eventPublisher,
		limiter:        limiter,
		settings:       settings,
	}
}

func (s *authService) SelfRegister(ctx context.Context, clientKey string, req *dto.SelfRegisterRequest) (*dto.MemberResponse, error) {
	if !s.limiter.Allow("register:" + clientKey) {
		return nil, apperror.RateLimited(msgTooManyAttempts)
	}

	member, err := s.engine.SelfRegister(ctx, s.uowFactory.NewUnitOfWork(ctx), req)
	if err != nil {
		return nil, err
	}
	s.eventPublisher.MemberRegistered(ctx, member, membershipEvents.SourceSelf)
	return mapper.MemberToResponse(member, s.loc), nil
}

func (s *authService) Login(ctx context.Context, clientKey string, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if !s.limiter.Allow("login:" + clientKey) {
		return nil, apperror.RateLimited(msgTooManyAttempts)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Find member by email
	member, err := uow.MemberRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.Storage("find member", err)
	}
	if member == nil {
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	// 2. Admin-created members have no password until activated
	if !member.Activated() {
		return nil, apperror.Unauthorized(msgNotActivated)
	}

	// 3. Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(*member.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	return s.memberSession(ctx, uow, member)
}

// CodeLogin signs in admin-created members by unique code. The email is
// optional but must match when both sides have one.
func (s *authService) CodeLogin(ctx context.Context, clientKey string, req *dto.CodeLoginRequest) (*dto.LoginResponse, error) {
	if !s.limiter.Allow("login:" + clientKey) {
		return nil, apperror.RateLimited(msgTooManyAttempts)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	member, err := uow.MemberRepository().FindOne(ctx, specification.ByUniqueCode{Code: req.UniqueCode})
	if err != nil {
		return nil, apperror.Storage("find member", err)
	}
	if member == nil {
		return nil, apperror.Unauthorized("Invalid Member ID.")
	}
	if member.IsSelfRegistered {
		return nil, apperror.Unauthorized("Please login using your regular user login.")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" && member.Email != nil && strings.ToLower(*member.Email) != email {
		return nil, apperror.Unauthorized("Email does not match the Member ID.")
	}

	return s.memberSession(ctx, uow, member)
}

func (s *authService) AdminLogin(ctx context.Context, clientKey string, req *dto.AdminLoginRequest) (*dto.LoginResponse, error) {
	if !s.limiter.Allow("admin:" + clientKey) {
		return nil, apperror.RateLimited(msgTooManyAttempts)
	}

	if s.settings.AdminPasswordHash == "" || !strings.EqualFold(strings.TrimSpace(req.Email), s.settings.AdminEmail) {
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.settings.AdminPasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	token, err := serverutils.SignToken(s.settings.JWTSecret, 0, serverutils.RoleAdmin, s.clock.Now(), s.settings.TokenTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "Admin logged in", map[string]interface{}{"email": s.settings.AdminEmail})
	return &dto.LoginResponse{Token: token, Role: serverutils.RoleAdmin}, nil
}

// memberSession re-checks the member's own expiry before issuing a token.
// Expired members may still sign in to see their status and renew.
func (s *authService) memberSession(ctx context.Context, uow unitofwork.UnitOfWork, member *entity.Member) (*dto.LoginResponse, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Storage("begin login", err)
	}
	defer uow.Rollback()

	if _, err := s.engine.ExpireIfDue(ctx, uow, member, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Storage("commit login", err)
	}

	token, err := serverutils.SignToken(s.settings.JWTSecret, member.Id, serverutils.RoleMember, s.clock.Now(), s.settings.TokenTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "Member logged in", map[string]interface{}{
		"member_id": member.Id,
		"status":    member.Status,
	})
	return &dto.LoginResponse{
		Token:  token,
		Role:   serverutils.RoleMember,
		Member: mapper.MemberToResponse(member, s.loc),
	}, nil
}
