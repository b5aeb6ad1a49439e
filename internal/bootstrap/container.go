package bootstrap

import (
	"context"
	"time"

	"gym-membership-be/internal/config"
	"gym-membership-be/internal/controller"
	"gym-membership-be/internal/dto"
	"gym-membership-be/internal/pkg/logger"
	"gym-membership-be/internal/pkg/mailer"
	"gym-membership-be/internal/pkg/ratelimit"
	"gym-membership-be/internal/pkg/timeutil"
	"gym-membership-be/internal/repository/memory"
	"gym-membership-be/internal/repository/unitofwork"
	"gym-membership-be/internal/scheduler"
	"gym-membership-be/internal/service"
	"gym-membership-be/pkg/events"
	"gym-membership-be/pkg/lock"
	"gym-membership-be/pkg/membership/audit"
	membershipEvents "gym-membership-be/pkg/membership/events"
	"gym-membership-be/pkg/membership/lifecycle"
	"gym-membership-be/pkg/membership/pricing"
	"gym-membership-be/pkg/membership/renewal"
	"gym-membership-be/pkg/membership/statistics"

	pktNats "gym-membership-be/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const localEventTopic = "membership.events"

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	AdminController controller.IAdminController
	UserController  controller.IUserController
	PlanController  controller.PlanController

	// Background Services (Exposed for main.go to run)
	Notifications *service.NotificationService
	Scheduler     *scheduler.Scheduler
	SweepJob      *scheduler.SweepJob

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	loc := timeutil.LoadLocation(cfg.App.Timezone)
	clock := timeutil.NewSystemClock(loc)
	uowFactory := unitofwork.NewRepositoryFactory(db)

	c := &Container{Logger: sysLogger}

	// 2. Event transport: JetStream when configured, in-process channel otherwise
	sink, source := c.eventTransport(cfg, sysLogger)
	eventPublisher := membershipEvents.NewPublisher(sink, clock, sysLogger)

	// 3. Domain
	auditWriter := audit.NewWriter(clock, loc)
	pricingResolver := pricing.NewResolver(sysLogger)
	engine := lifecycle.NewEngine(sysLogger, clock, loc, pricingResolver, auditWriter)
	workflow := renewal.NewWorkflow(sysLogger, clock, loc, engine, auditWriter)
	dashboardCache := memory.NewSnapshotCache[*dto.DashboardSummaryResponse](clock, cfg.App.DashboardCacheTTL)
	aggregator := statistics.NewAggregator(sysLogger, loc, dashboardCache)

	// 4. Notifications (only with SMTP)
	if cfg.SMTP.Host != "" {
		emailService := mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
			sysLogger,
		)
		c.Notifications = service.NewNotificationService(source, emailService, sysLogger)
	} else {
		sysLogger.Warn("BOOTSTRAP", "SMTP host not configured, member emails disabled", nil)
	}

	// 5. Expiration sweep
	sweepLogger := logger.NewIsolatedLogger(cfg.App.SweepLogFilePath)
	c.closers = append(c.closers, func() { _ = sweepLogger.Sync() })
	c.SweepJob = scheduler.NewSweepJob(engine, uowFactory, c.locker(cfg, sysLogger), eventPublisher, clock, sweepLogger)
	if cfg.Scheduler.Enabled {
		c.Scheduler = scheduler.New(loc, sweepLogger)
		if err := c.Scheduler.AddSweep(cfg.Scheduler.SweepSchedule, c.SweepJob); err != nil {
			sysLogger.Error("BOOTSTRAP", "Expiration sweep disabled", map[string]interface{}{"error": err.Error()})
			c.Scheduler = nil
		}
	}

	// 6. Services
	limiter := ratelimit.NewKeyedLimiter(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst)
	authService := service.NewAuthService(uowFactory, sysLogger, clock, loc, engine, eventPublisher, limiter, service.AuthSettings{
		JWTSecret:         cfg.Auth.JWTSecret,
		TokenTTL:          cfg.Auth.TokenTTL,
		AdminEmail:        cfg.Auth.AdminEmail,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
	})
	adminService := service.NewAdminService(uowFactory, sysLogger, clock, loc, engine, workflow, aggregator, eventPublisher)
	memberService := service.NewMemberService(uowFactory, sysLogger, loc, workflow, pricingResolver, eventPublisher)

	// 7. Controllers
	c.AuthController = controller.NewAuthController(authService)
	c.AdminController = controller.NewAdminController(adminService)
	c.UserController = controller.NewUserController(memberService)
	c.PlanController = controller.NewPlanController(memberService)

	return c
}

func (c *Container) eventTransport(cfg *config.Config, log logger.ILogger) (events.Sink, events.Source) {
	if cfg.App.NatsURL != "" {
		natsPub, pubErr := pktNats.NewPublisher(cfg.App.NatsURL, log)
		natsSub, subErr := pktNats.NewSubscriber(cfg.App.NatsURL, log)
		if pubErr == nil && subErr == nil {
			c.closers = append(c.closers, natsPub.Close, natsSub.Close)
			log.Info("BOOTSTRAP", "Using NATS JetStream for membership events", map[string]interface{}{"url": cfg.App.NatsURL})
			return natsPub, natsSub
		}
		if natsPub != nil {
			natsPub.Close()
		}
		if natsSub != nil {
			natsSub.Close()
		}
		log.Warn("BOOTSTRAP", "NATS unavailable, falling back to in-process events", map[string]interface{}{
			"publisherError":  errString(pubErr),
			"subscriberError": errString(subErr),
		})
	}

	bus := events.NewChannelBus(localEventTopic, log)
	c.closers = append(c.closers, func() { _ = bus.Close() })
	return bus, bus
}

func (c *Container) locker(cfg *config.Config, log logger.ILogger) lock.Locker {
	if cfg.App.RedisURL == "" {
		return lock.NewLocalLocker()
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("BOOTSTRAP", "Redis unreachable, sweep lock is process-local", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return lock.NewLocalLocker()
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return lock.NewRedisLocker(rdb, cfg.Scheduler.LockTTL)
}

// Close releases transports in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
