package requests

type AuditLogFilter struct {
	ActorID      string
	ResourceType string
	Action       string
}
