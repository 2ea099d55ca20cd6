package contracts

import (
	"context"

	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/dto/responses"
)

type PaymentGatewayService interface {
	CreatePaymentIntent(ctx context.Context, request *requests.PaymentIntent) (*responses.PaymentIntent, error)
}
