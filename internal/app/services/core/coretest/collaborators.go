package coretest

import (
	"context"
	"errors"
	"sync"
	"time"

	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/dto/requests"

	"github.com/google/uuid"
)

type AuditEntry struct {
	ActorID    string
	Action     authorization.Action
	Resource   authorization.ResourceType
	ResourceID string
	Details    map[string]any
}

// AuditRecorder records synchronously so tests can assert right after a call.
type AuditRecorder struct {
	mu      sync.Mutex
	Entries []AuditEntry
}

func (r *AuditRecorder) Record(ctx context.Context, action authorization.Action, resource authorization.ResourceType, resourceID string, details map[string]any) {
	entry := AuditEntry{Action: action, Resource: resource, ResourceID: resourceID, Details: details}
	if actor := authorization.ActorFromContext(ctx); actor != nil {
		entry.ActorID = actor.ID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, entry)
}

func (r *AuditRecorder) Drain(context.Context) error {
	return nil
}

func (r *AuditRecorder) Actions() []authorization.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]authorization.Action, 0, len(r.Entries))
	for _, entry := range r.Entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

type NotificationSender struct {
	mu       sync.Mutex
	Payloads []*requests.EmailPayload
}

func (s *NotificationSender) Notify(_ context.Context, payload *requests.EmailPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Payloads = append(s.Payloads, payload)
}

// Recipients returns the first recipient of every payload sent so far.
func (s *NotificationSender) Recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	recipients := []string{}
	for _, payload := range s.Payloads {
		if len(payload.To) > 0 {
			recipients = append(recipients, payload.To[0])
		}
	}
	return recipients
}

type RecipientResolver struct{ *Store }

func (r *RecipientResolver) UsersOf(_ context.Context, owners authorization.Owners) []*models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := []*models.User{}
	if patient, ok := r.Patients[owners.PatientID]; ok {
		if user, ok := r.Users[patient.UserID]; ok {
			users = append(users, &user)
		}
	}
	if doctor, ok := r.Doctors[owners.DoctorID]; ok {
		if user, ok := r.Users[doctor.UserID]; ok {
			users = append(users, &user)
		}
	}
	return users
}

// Locker is an in-process stand-in for the redis lock.
type Locker struct {
	mu    sync.Mutex
	locks map[string]string
	// Err makes TryLock fail as if redis were unreachable.
	Err error
}

func (l *Locker) TryLock(_ context.Context, key string, _ time.Duration) (bool, string, error) {
	if l.Err != nil {
		return false, "", l.Err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = map[string]string{}
	}
	if _, held := l.locks[key]; held {
		return false, "", nil
	}
	value := uuid.NewString()
	l.locks[key] = value
	return true, value, nil
}

func (l *Locker) Unlock(_ context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks[key] != lockValue {
		return errors.New("lock not owned")
	}
	delete(l.locks, key)
	return nil
}

// Hold takes key as if another request owned it.
func (l *Locker) Hold(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = map[string]string{}
	}
	l.locks[key] = "held-elsewhere"
}

// Transactor restores the whole store when fn fails. Retries makes the
// first commits fail transiently so fn runs again on a rolled back store.
type Transactor struct {
	Store    *Store
	Retries  int
	Attempts int
	mu       sync.Mutex
}

func (t *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for {
		before := t.Store.snapshot()
		t.Attempts++
		if err := fn(ctx); err != nil {
			t.Store.restore(before)
			return err
		}
		if t.Retries == 0 {
			return nil
		}
		t.Retries--
		t.Store.restore(before)
	}
}
