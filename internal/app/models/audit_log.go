package models

import "time"

// AuditLog is append-only: the application never updates or deletes an entry.
type AuditLog struct {
	ID           string         `json:"id" bson:"_id,omitempty"`
	ActorID      string         `json:"actorId" bson:"actorId"`
	ActorRole    string         `json:"actorRole" bson:"actorRole"`
	Action       string         `json:"action" bson:"action"`
	ResourceType string         `json:"resourceType" bson:"resourceType"`
	ResourceID   string         `json:"resourceId" bson:"resourceId"`
	Details      map[string]any `json:"details,omitempty" bson:"details,omitempty"`
	RequestID    string         `json:"requestId,omitempty" bson:"requestId,omitempty"`
	IPAddress    string         `json:"ipAddress,omitempty" bson:"ipAddress,omitempty"`
	UserAgent    string         `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	Timestamp    time.Time      `json:"timestamp" bson:"timestamp"`
}
