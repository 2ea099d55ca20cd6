package config

import (
	"strings"
	"time"

	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "hospital"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
			MaxSizeInMegabyte:   utils.GetEnvInt("LOGGER_MAX_SIZE_IN_MEGABYTE", 100),
			MaxBackups:          utils.GetEnvInt("LOGGER_MAX_BACKUPS", 5),
			MaxAgeInDays:        utils.GetEnvInt("LOGGER_MAX_AGE_IN_DAYS", 30),
		},
		SMTP: SMTP{
			Host:        utils.GetEnvString("SMTP_HOST", "localhost"),
			Username:    utils.GetEnvString("SMTP_USERNAME", ""),
			Password:    utils.GetEnvString("SMTP_PASSWORD", ""),
			EmailSender: utils.GetEnvString("SMTP_EMAIL_SENDER", "no-reply@hospital.local"),
			Port:        utils.GetEnvInt("SMTP_PORT", 2525),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                           utils.GetEnvString("APP_ENV", "development"),
			Port:                          utils.GetEnvString("APP_PORT", "8080"),
			Version:                       utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                       utils.GetEnvString("APP_ADDRESS", "0.0.0.0"),
			EndpointPrefix:                utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			AllowedOrigins:                strings.Split(utils.GetEnvString("APP_ALLOWED_ORIGINS", "*"), ","),
			MaxRequests:                   utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:      utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:     utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte:    utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			AuthRateLimitPerMinute:        utils.GetEnvInt("APP_AUTH_RATE_LIMIT_PER_MINUTE", 10),
			AuthRateLimitBlockInMinutes:   utils.GetEnvInt("APP_AUTH_RATE_LIMIT_BLOCK_IN_MINUTES", 5),
			RequestTimeoutInSeconds:       utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			AttachmentMaxUploadSizeInByte: int64(utils.GetEnvInt("APP_ATTACHMENT_MAX_UPLOAD_SIZE_IN_MB", 10)) << 20,
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24),
		},
		Mailer: AppMailer{
			UseBroker:   utils.GetEnvBool("APP_MAILER_USE_BROKER", true),
			EmailSender: utils.GetEnvString("APP_MAILER_EMAIL_SENDER", "no-reply@hospital.local"),
		},
		Minio: AppMinio{
			BucketName:                   utils.GetEnvString("APP_MINIO_BUCKET_NAME", "medical-records"),
			PreSignedUrlExpiryTimeInHour: utils.GetEnvInt("APP_MINIO_PRE_SIGNED_URL_EXPIRY_TIME_IN_HOUR", 24),
		},
		RabbitMQ: AppRabbitMQ{
			MailerQueue: utils.GetEnvString("APP_RABBITMQ_MAILER_QUEUE", "hospital.mailer"),
		},
		MongoDB: AppMongoDB{
			DbName: utils.GetEnvString("MONGODB_DB_NAME", "hospital"),
		},
		PaymentGateway: AppPaymentGateway{
			BaseUrl:                 utils.GetEnvString("PAYMENT_GATEWAY_BASE_URL", "http://localhost:12111"),
			ApiKey:                  utils.GetEnvString("PAYMENT_GATEWAY_API_KEY", ""),
			Currency:                utils.GetEnvString("PAYMENT_GATEWAY_CURRENCY", constvars.PaymentCurrency),
			RequestTimeoutInSeconds: utils.GetEnvInt("PAYMENT_GATEWAY_REQUEST_TIMEOUT_IN_SECONDS", 15),
			LockTTL:                 utils.GetEnvDuration("PAYMENT_GATEWAY_LOCK_TTL", time.Minute),
		},
		Audit: AppAudit{
			WriteTimeout: utils.GetEnvDuration("APP_AUDIT_WRITE_TIMEOUT", 5*time.Second),
		},
		Identity: AppIdentity{
			ProfileCacheTTL: utils.GetEnvDuration("APP_PROFILE_CACHE_TTL", 10*time.Minute),
		},
		Booking: AppBooking{
			LockTTL: utils.GetEnvDuration("APP_BOOKING_LOCK_TTL", 10*time.Second),
		},
	}
}
