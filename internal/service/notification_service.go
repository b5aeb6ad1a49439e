package service

import (
	"context"

	"gym-membership-be/internal/pkg/logger"
	"gym-membership-be/internal/pkg/mailer"
	"gym-membership-be/pkg/events"
	membershipEvents "gym-membership-be/pkg/membership/events"
)

const notificationConsumer = "membership-notifications"

// NotificationService turns membership events into member emails.
type NotificationService struct {
	source events.Source
	mailer mailer.IEmailService
	logger logger.ILogger
}

func NewNotificationService(source events.Source, mailer mailer.IEmailService, log logger.ILogger) *NotificationService {
	return &NotificationService{
		source: source,
		mailer: mailer,
		logger: log,
	}
}

// Start subscribes to the event source. Delivery stops when ctx is cancelled.
func (s *NotificationService) Start(ctx context.Context) error {
	if err := s.source.Subscribe(ctx, notificationConsumer, s.handleEvent); err != nil {
		s.logger.Error("NOTIFICATION", "Failed to start notification subscriber", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	s.logger.Info("NOTIFICATION", "Notification service started", nil)
	return nil
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	email, _ := payload["email"].(string)
	name, _ := payload["member_name"].(string)

	var err error
	switch event.EventType() {
	case membershipEvents.TypeMemberRegistered:
		if email == "" {
			return nil
		}
		code, _ := payload["unique_code"].(string)
		source, _ := payload["source"].(string)
		err = s.mailer.SendWelcome(email, name, code, source == membershipEvents.SourceSelf)

	case membershipEvents.TypeRenewalApproved, membershipEvents.TypeRenewalDenied:
		if email == "" {
			return nil
		}
		plan, _ := payload["requested_plan"].(string)
		endDate, _ := payload["end_date"].(string)
		approved := event.EventType() == membershipEvents.TypeRenewalApproved
		err = s.mailer.SendRenewalDecision(email, name, plan, approved, endDate)

	default:
		return nil
	}

	// Mail is best effort; a failed send is logged and not redelivered.
	if err != nil {
		s.logger.Warn("NOTIFICATION", "Notification not delivered", map[string]interface{}{
			"type":  event.EventType(),
			"email": email,
			"error": err.Error(),
		})
	}
	return nil
}
