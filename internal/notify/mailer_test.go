package notify

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-service/internal/config"
	"report-service/internal/model"
)

func TestSendWithoutRelayIsNoOp(t *testing.T) {
	mailer := NewMailer(config.MailConfig{}, zerolog.Nop())

	err := mailer.Send(context.Background(), model.Notification{
		Kind:        model.NotificationStatusChange,
		Recipient:   "citizen@example.com",
		ComplaintID: "SMC-2026-000001",
		NewStatus:   model.ReportStatusResolved,
	})
	require.NoError(t, err)
}

func TestComposeAssignmentMessage(t *testing.T) {
	subject, body := composeMessage(model.Notification{
		Kind:          model.NotificationAssignment,
		Recipient:     "alpha@smc.gov.in",
		RecipientName: "Team Alpha",
		ComplaintID:   "SMC-2026-000123",
		Location:      "MG Road, Near City Mall",
		DamageType:    "pothole",
		Severity:      model.ReportSeverityCritical,
	})

	assert.Equal(t, "New Report Assigned: SMC-2026-000123", subject)
	assert.Contains(t, body, "Hello Team Alpha")
	assert.Contains(t, body, "MG Road, Near City Mall")
	assert.Contains(t, body, "critical")
}

func TestComposeStatusChangeMessage(t *testing.T) {
	subject, body := composeMessage(model.Notification{
		Kind:        model.NotificationStatusChange,
		Recipient:   "citizen@example.com",
		ComplaintID: "SMC-2026-000123",
		NewStatus:   model.ReportStatusResolved,
	})

	assert.Equal(t, "Report SMC-2026-000123 Status Update", subject)
	assert.Contains(t, body, "has been resolved")
	assert.Contains(t, body, "repair work has been completed")
}

func TestComposeUnknownKind(t *testing.T) {
	subject, body := composeMessage(model.Notification{Kind: "webhook"})
	assert.Empty(t, subject)
	assert.Empty(t, body)
}
