package mailer

import (
	"bytes"
	"errors"
	"io"
	"mime/quotedprintable"
	"strings"
	"testing"

	"gym-membership-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type captureSender struct {
	messages []*gomail.Message
	err      error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.messages = append(c.messages, m...)
	return c.err
}

func render(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)

	_, body, found := strings.Cut(buf.String(), "\r\n\r\n")
	require.True(t, found)
	decoded, err := io.ReadAll(quotedprintable.NewReader(strings.NewReader(body)))
	require.NoError(t, err)
	return string(decoded)
}

func TestSendWelcome(t *testing.T) {
	sender := &captureSender{}
	svc := NewEmailServiceWithSender(sender, "desk@gym.test", "Gym Desk", logger.NewNopLogger())

	require.NoError(t, svc.SendWelcome("ana@example.com", "Ana Reyes", "GYM-1A2B3C4D", false))
	require.Len(t, sender.messages, 1)

	m := sender.messages[0]
	assert.Equal(t, []string{"ana@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Welcome to the Gym"}, m.GetHeader("Subject"))
	assert.Contains(t, render(t, m), "GYM-1A2B3C4D")
}

func TestSendRenewalDecision(t *testing.T) {
	sender := &captureSender{}
	svc := NewEmailServiceWithSender(sender, "desk@gym.test", "Gym Desk", logger.NewNopLogger())

	require.NoError(t, svc.SendRenewalDecision("ana@example.com", "Ana Reyes", "Monthly", true, "2025-07-01"))
	require.NoError(t, svc.SendRenewalDecision("ana@example.com", "Ana Reyes", "Daily", false, ""))
	require.Len(t, sender.messages, 2)

	assert.Equal(t, []string{"Your Renewal Was Approved"}, sender.messages[0].GetHeader("Subject"))
	assert.Contains(t, render(t, sender.messages[0]), "2025-07-01")
	assert.Equal(t, []string{"Your Renewal Request"}, sender.messages[1].GetHeader("Subject"))
}

func TestSend_PropagatesFailure(t *testing.T) {
	sender := &captureSender{err: errors.New("smtp down")}
	svc := NewEmailServiceWithSender(sender, "desk@gym.test", "Gym Desk", logger.NewNopLogger())

	assert.Error(t, svc.SendWelcome("ana@example.com", "Ana Reyes", "GYM-1A2B3C4D", true))
}
