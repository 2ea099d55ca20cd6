package payment_gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hospital-service/internal/app/config"
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/dto/responses"
	"hospital-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const paymentIntentsPath = "/v1/payment_intents"

type paymentGatewayService struct {
	BaseUrl    string
	ApiKey     string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewPaymentGatewayService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentGatewayService {
	return &paymentGatewayService{
		BaseUrl: strings.TrimRight(internalConfig.PaymentGateway.BaseUrl, "/"),
		ApiKey:  internalConfig.PaymentGateway.ApiKey,
		HTTPClient: &http.Client{
			Timeout: time.Duration(internalConfig.PaymentGateway.RequestTimeoutInSeconds) * time.Second,
		},
		Log: logger,
	}
}

// CreatePaymentIntent charges the amount through the gateway. Any non 2xx answer
// is reported as an upstream failure.
func (s *paymentGatewayService) CreatePaymentIntent(ctx context.Context, request *requests.PaymentIntent) (*responses.PaymentIntent, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("paymentGatewayService.CreatePaymentIntent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64("amount", request.Amount),
		zap.String("currency", request.Currency),
	)

	body, err := json.Marshal(request)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseUrl+paymentIntentsPath, strings.NewReader(string(body)))
	if err != nil {
		s.Log.Error("paymentGatewayService.CreatePaymentIntent error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAuthorization, constvars.BearerPrefix+s.ApiKey)
	if invoiceID, ok := request.Metadata["invoiceId"]; ok {
		req.Header.Set(constvars.HeaderIdempotencyKey, invoiceID)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		s.Log.Error("paymentGatewayService.CreatePaymentIntent error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrPaymentGateway(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		gatewayErr := fmt.Errorf(constvars.ErrDevPaymentGatewayResponse, resp.StatusCode)
		s.Log.Error("paymentGatewayService.CreatePaymentIntent gateway rejected request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.ByteString(constvars.LoggingResponseKey, bodyBytes),
		)
		return nil, exceptions.ErrPaymentGateway(gatewayErr)
	}

	result := new(responses.PaymentIntent)
	if err := json.Unmarshal(bodyBytes, result); err != nil {
		return nil, exceptions.ErrPaymentGateway(err)
	}
	if result.ID == "" {
		return nil, exceptions.ErrPaymentGateway(fmt.Errorf("payment intent response carries no id"))
	}

	s.Log.Info("paymentGatewayService.CreatePaymentIntent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIntentIDKey, result.ID),
	)
	return result, nil
}
