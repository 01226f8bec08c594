// internal/intake/notify.go
package intake

import (
	"context"
	"time"

	"dental-intake/internal/common/config"
	commonerrors "dental-intake/internal/common/errors"
	"dental-intake/internal/common/logger"
	"dental-intake/internal/common/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const (
	NotificationTypeProviderSummary = "provider_summary"
	NotificationTypePatientThankYou = "patient_thank_you"
)

// SESService is the send interface, kept narrow for mocking.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Notifier delivers the two intake emails. Both sends are strictly
// best-effort: every failure path ends in a log line and a metric, never in
// an error return, so notification trouble can never affect the submission
// response.
type Notifier struct {
	ses    SESService
	cfg    config.NotificationConfig
	logger logger.Logger
}

func NewNotifier(sesClient SESService, cfg config.NotificationConfig, log logger.Logger) *Notifier {
	return &Notifier{
		ses:    sesClient,
		cfg:    cfg,
		logger: log,
	}
}

// Enabled reports whether email delivery is configured at all.
func (n *Notifier) Enabled() bool {
	return n != nil && n.ses != nil && n.cfg.Email.Enabled && n.cfg.Email.FromEmail != ""
}

// SendSubmissionEmails sends the provider summary and the patient thank-you
// for an accepted application. Each email gets its own attempt; one failing
// does not stop the other.
func (n *Notifier) SendSubmissionEmails(ctx context.Context, applicationID string, req *SubmissionRequest) {
	if !n.Enabled() {
		return
	}

	timeout := time.Duration(n.cfg.Email.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if n.cfg.Email.ProviderInbox != "" {
		subject, body := buildProviderSummary(req)
		n.send(ctx, applicationID, NotificationTypeProviderSummary, n.cfg.Email.ProviderInbox, subject, body)
	}

	subject, body := buildPatientThankYou(req)
	n.send(ctx, applicationID, NotificationTypePatientThankYou, req.Email, subject, body)
}

func (n *Notifier) send(ctx context.Context, applicationID, notificationType, to, subject, body string) {
	_, err := n.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.cfg.Email.FromEmail),
	})
	if err != nil {
		metrics.NotificationFailures.WithLabelValues(notificationType).Inc()
		sendErr := commonerrors.NewNotificationSendFailedError(notificationType, err)
		n.logger.WithError(sendErr).Error("Notification send failed", map[string]interface{}{
			"application_id":    applicationID,
			"notification_type": notificationType,
		})
	}
}
