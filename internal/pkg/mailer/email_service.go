package mailer

import (
	"fmt"

	"gym-membership-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail, memberName, uniqueCode string, selfRegistered bool) error
	SendRenewalDecision(toEmail, memberName, plan string, approved bool, endDate string) error
}

// Sender delivers composed messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	sender      Sender
	senderEmail string
	senderName  string
	logger      logger.ILogger
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string, logger logger.ILogger) IEmailService {
	return NewEmailServiceWithSender(gomail.NewDialer(host, port, username, password), senderEmail, senderName, logger)
}

func NewEmailServiceWithSender(sender Sender, senderEmail, senderName string, logger logger.ILogger) IEmailService {
	return &emailService{
		sender:      sender,
		senderEmail: senderEmail,
		senderName:  senderName,
		logger:      logger,
	}
}

func (s *emailService) SendWelcome(toEmail, memberName, uniqueCode string, selfRegistered bool) error {
	var body string
	if selfRegistered {
		body = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome, %s!</h2>
			<p>Your registration was received and is waiting for approval at the front desk.</p>
			<p>Your membership code is:</p>
			<h1 style="color: #4CAF50; letter-spacing: 3px;">%s</h1>
			<p>Please settle your payment to activate your membership.</p>
		</div>
	`, memberName, uniqueCode)
	} else {
		body = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome, %s!</h2>
			<p>You have been registered as a gym member.</p>
			<p>Use this code together with your email to sign in:</p>
			<h1 style="color: #4CAF50; letter-spacing: 3px;">%s</h1>
		</div>
	`, memberName, uniqueCode)
	}

	return s.send(toEmail, "Welcome to the Gym", body)
}

func (s *emailService) SendRenewalDecision(toEmail, memberName, plan string, approved bool, endDate string) error {
	var subject, body string
	if approved {
		subject = "Your Renewal Was Approved"
		body = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>Your renewal request for the <strong>%s</strong> plan was approved.</p>
			<p>Your membership is now active until <strong>%s</strong>.</p>
		</div>
	`, memberName, plan, endDate)
	} else {
		subject = "Your Renewal Request"
		body = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>Your renewal request for the <strong>%s</strong> plan was not approved.</p>
			<p>Please visit the front desk if you have questions.</p>
		</div>
	`, memberName, plan)
	}

	return s.send(toEmail, subject, body)
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.sender.DialAndSend(m); err != nil {
		s.logger.Error("MAILER", "Failed to send email", map[string]interface{}{
			"to":      toEmail,
			"subject": subject,
			"error":   err.Error(),
		})
		return err
	}

	s.logger.Info("MAILER", "Email sent", map[string]interface{}{
		"to":      toEmail,
		"subject": subject,
	})
	return nil
}
