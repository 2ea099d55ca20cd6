package mailer

import (
	"context"
	"time"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const smtpSendTimeout = 15 * time.Second

type smtpMailerService struct {
	Dialer      *gomail.Dialer
	EmailSender string
	Log         *zap.Logger
}

func NewSMTPMailerService(dialer *gomail.Dialer, emailSender string, logger *zap.Logger) contracts.MailerService {
	return &smtpMailerService{
		Dialer:      dialer,
		EmailSender: emailSender,
		Log:         logger,
	}
}

func (s *smtpMailerService) SendEmail(ctx context.Context, payload *requests.EmailPayload) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("smtpMailerService.SendEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Strings(constvars.LoggingEmailRecipientsKey, payload.To),
	)

	message := gomail.NewMessage()
	message.SetHeader("From", s.EmailSender)
	message.SetHeader("To", payload.To...)
	message.SetHeader("Subject", payload.Subject)
	message.SetBody(constvars.MIMETextPlain, payload.Body)

	done := make(chan error, 1)
	go func() {
		done <- s.Dialer.DialAndSend(message)
	}()

	wait := smtpSendTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < wait {
			wait = remaining
		}
	}

	select {
	case err := <-done:
		if err != nil {
			return exceptions.ErrSMTPSendEmail(err, s.Dialer.Host)
		}
	case <-ctx.Done():
		return exceptions.ErrSMTPSendEmail(ctx.Err(), s.Dialer.Host)
	case <-time.After(wait):
		return exceptions.ErrSMTPSendEmail(context.DeadlineExceeded, s.Dialer.Host)
	}

	s.Log.Info("smtpMailerService.SendEmail succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailSubjectKey, payload.Subject),
	)
	return nil
}
