package mailer

import (
	"context"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/metrics"

	"go.uber.org/zap"
)

type notificationSender struct {
	Mailer contracts.MailerService
	Log    *zap.Logger
}

func NewNotificationSender(mailer contracts.MailerService, logger *zap.Logger) contracts.NotificationSender {
	return &notificationSender{
		Mailer: mailer,
		Log:    logger,
	}
}

// Notify hands the payload to the mailer and swallows any failure.
func (s *notificationSender) Notify(ctx context.Context, payload *requests.EmailPayload) {
	if payload == nil || len(payload.To) == 0 {
		return
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if err := s.Mailer.SendEmail(ctx, payload); err != nil {
		metrics.NotificationFailures.Inc()
		s.Log.Warn("notificationSender.Notify failed to send email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Strings(constvars.LoggingEmailRecipientsKey, payload.To),
			zap.String(constvars.LoggingEmailSubjectKey, payload.Subject),
			zap.Error(err),
		)
	}
}
