package contracts

import (
	"context"

	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/dto/requests"
)

// MailerService delivers a single email. Implementations either publish to the
// broker or talk to SMTP directly.
type MailerService interface {
	SendEmail(ctx context.Context, payload *requests.EmailPayload) error
}

// NotificationSender is what usecases call after a committed mutation. It never
// returns an error: failures are logged and counted.
type NotificationSender interface {
	Notify(ctx context.Context, payload *requests.EmailPayload)
}

// RecipientResolver maps the owners of a resource to the user accounts to notify.
// Owners that cannot be resolved are skipped.
type RecipientResolver interface {
	UsersOf(ctx context.Context, owners authorization.Owners) []*models.User
}
