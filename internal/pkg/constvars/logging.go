package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingActorIDKey            = "actor_id"
	LoggingActorRoleKey          = "actor_role"
	LoggingQueryParamsKey        = "query_params"
	LoggingResponseKey           = "response"
	LoggingResponseLengthKey     = "response_length"
	LoggingResourceTypeKey       = "resource_type"
	LoggingResourceIDKey         = "resource_id"
	LoggingActionKey             = "action"
	LoggingReasonKey             = "reason"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingStatusCodeKey         = "status_code"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingBucketNameKey         = "bucket_name"
	LoggingObjectNameKey         = "object_name"
	LoggingQueueNameKey          = "queue_name"
	LoggingEmailRecipientsKey    = "email_recipients"
	LoggingEmailSubjectKey       = "email_subject"
	LoggingInvoiceNumberKey      = "invoice_number"
	LoggingPaymentIntentIDKey    = "payment_intent_id"
	LoggingEventKey              = "event"
)
