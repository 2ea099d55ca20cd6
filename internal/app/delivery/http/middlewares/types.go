package middlewares

import (
	"time"

	"hospital-service/internal/app/config"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	AuthLimiter    *RateLimiter
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		AuthLimiter: NewRateLimiter(
			internalConfig.App.AuthRateLimitPerMinute,
			time.Minute,
			time.Duration(internalConfig.App.AuthRateLimitBlockInMinutes)*time.Minute,
		).WithLogger(logger),
	}
}
