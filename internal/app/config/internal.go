package config

import "time"

type InternalConfig struct {
	App            App
	JWT            AppJWT
	Mailer         AppMailer
	Minio          AppMinio
	RabbitMQ       AppRabbitMQ
	MongoDB        AppMongoDB
	PaymentGateway AppPaymentGateway
	Audit          AppAudit
	Identity       AppIdentity
	Booking        AppBooking
}

type App struct {
	Env                           string
	Port                          string
	Version                       string
	Address                       string
	EndpointPrefix                string
	AllowedOrigins                []string
	MaxRequests                   int
	ShutdownTimeoutInSeconds      int
	MaxTimeRequestsPerSeconds     int
	RequestBodyLimitInMegabyte    int
	AuthRateLimitPerMinute        int
	AuthRateLimitBlockInMinutes   int
	RequestTimeoutInSeconds       int
	AttachmentMaxUploadSizeInByte int64
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

type AppMailer struct {
	// UseBroker publishes emails to RabbitMQ; otherwise they are sent over SMTP directly.
	UseBroker   bool
	EmailSender string
}

type AppMinio struct {
	BucketName                   string
	PreSignedUrlExpiryTimeInHour int
}

type AppRabbitMQ struct {
	MailerQueue string
}

type AppMongoDB struct {
	DbName string
}

type AppPaymentGateway struct {
	BaseUrl                 string
	ApiKey                  string
	Currency                string
	RequestTimeoutInSeconds int
	// LockTTL must outlast a gateway round trip.
	LockTTL time.Duration
}

type AppAudit struct {
	WriteTimeout time.Duration
}

type AppIdentity struct {
	ProfileCacheTTL time.Duration
}

type AppBooking struct {
	LockTTL time.Duration
}
