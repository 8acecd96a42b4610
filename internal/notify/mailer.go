package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"report-service/internal/config"
	"report-service/internal/model"
)

// Mailer sends lifecycle notifications over SMTP. Without a configured
// relay it degrades to a logged no-op, so an unconfigured deployment
// still succeeds.
type Mailer struct {
	cfg config.MailConfig
	log zerolog.Logger
}

func NewMailer(cfg config.MailConfig, log zerolog.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

func (m *Mailer) Send(ctx context.Context, n model.Notification) error {
	if !m.cfg.Configured() {
		m.log.Debug().
			Str("kind", string(n.Kind)).
			Str("complaint_id", n.ComplaintID).
			Msg("mail relay not configured, skipping notification")
		return nil
	}

	subject, body := composeMessage(n)
	if subject == "" {
		return fmt.Errorf("unknown notification kind %q", n.Kind)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", n.Recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUsername, m.cfg.SMTPPassword)
	return dialer.DialAndSend(msg)
}

var statusMessages = map[model.ReportStatus]string{
	model.ReportStatusPending:    "is pending review",
	model.ReportStatusInProgress: "is now being addressed by our team",
	model.ReportStatusResolved:   "has been resolved",
}

func composeMessage(n model.Notification) (subject, body string) {
	switch n.Kind {
	case model.NotificationAssignment:
		name := n.RecipientName
		if name == "" {
			name = "Worker"
		}
		subject = fmt.Sprintf("New Report Assigned: %s", n.ComplaintID)
		body = fmt.Sprintf(`<h2>New Report Assignment</h2>
<p>Hello %s,</p>
<p>A new road damage report has been assigned to you:</p>
<ul>
<li><strong>Complaint ID:</strong> %s</li>
<li><strong>Location:</strong> %s</li>
<li><strong>Damage Type:</strong> %s</li>
<li><strong>Severity:</strong> %s</li>
</ul>
<p>Please log in to your worker dashboard to view and address this report.</p>
<p>Thank you for your service!</p>`,
			name, n.ComplaintID, n.Location, n.DamageType, n.Severity)
	case model.NotificationStatusChange:
		statusText, ok := statusMessages[n.NewStatus]
		if !ok {
			statusText = fmt.Sprintf("status changed to %s", n.NewStatus)
		}
		followUp := "<p>We will continue to keep you updated on the progress of your report.</p>"
		if n.NewStatus == model.ReportStatusResolved {
			followUp = "<p>Thank you for helping keep our roads safe! Your report has been addressed and the repair work has been completed.</p>"
		}
		subject = fmt.Sprintf("Report %s Status Update", n.ComplaintID)
		body = fmt.Sprintf(`<h2>Report Status Update</h2>
<p>Your road damage report <strong>%s</strong> %s.</p>
%s
<p>You can track your report at any time using your complaint ID.</p>`,
			n.ComplaintID, statusText, followUp)
	}
	return subject, body
}
