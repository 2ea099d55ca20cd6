package identity

import (
	"context"
	"fmt"
	"time"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type identityResolver struct {
	PatientRepository contracts.PatientRepository
	DoctorRepository  contracts.DoctorRepository
	RedisRepository   contracts.RedisRepository
	CacheTTL          time.Duration
	Log               *zap.Logger
}

func NewIdentityResolver(
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	redisRepository contracts.RedisRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) contracts.IdentityResolver {
	return &identityResolver{
		PatientRepository: patientRepository,
		DoctorRepository:  doctorRepository,
		RedisRepository:   redisRepository,
		CacheTTL:          cacheTTL,
		Log:               logger,
	}
}

// ResolveProfile looks up the profile linked to the actor. Found profile ids are
// cached; a missing profile is never cached so a freshly created one is seen at once.
func (r *identityResolver) ResolveProfile(ctx context.Context, actor *authorization.Actor) (authorization.Profile, error) {
	if actor == nil || actor.Role == authorization.RoleAdmin {
		return authorization.NoProfile, nil
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	key := profileCacheKey(actor.ID, actor.Role)

	if r.RedisRepository != nil {
		cached, err := r.RedisRepository.Get(ctx, key)
		if err != nil {
			// Fall back to the database.
			r.Log.Warn("identityResolver.ResolveProfile error reading profile cache",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		} else if profileID := unquote(cached); profileID != "" {
			return authorization.FoundProfile(profileID), nil
		}
	}

	profileID, err := r.lookupProfileID(ctx, actor)
	if err != nil {
		r.Log.Error("identityResolver.ResolveProfile error looking up profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingActorIDKey, actor.ID),
			zap.String(constvars.LoggingActorRoleKey, actor.Role.String()),
			zap.Error(err),
		)
		return authorization.Profile{}, err
	}
	if profileID == "" {
		return authorization.MissingProfile(), nil
	}

	if r.RedisRepository != nil {
		if err := r.RedisRepository.Set(ctx, key, profileID, r.CacheTTL); err != nil {
			r.Log.Warn("identityResolver.ResolveProfile error writing profile cache",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}
	return authorization.FoundProfile(profileID), nil
}

func (r *identityResolver) InvalidateProfile(ctx context.Context, userID string, role authorization.Role) error {
	if r.RedisRepository == nil {
		return nil
	}
	return r.RedisRepository.Delete(ctx, profileCacheKey(userID, role))
}

func (r *identityResolver) lookupProfileID(ctx context.Context, actor *authorization.Actor) (string, error) {
	switch actor.Role {
	case authorization.RolePatient:
		patient, err := r.PatientRepository.FindByUserID(ctx, actor.ID)
		if err != nil || patient == nil {
			return "", err
		}
		return patient.ID, nil
	case authorization.RoleDoctor:
		doctor, err := r.DoctorRepository.FindByUserID(ctx, actor.ID)
		if err != nil || doctor == nil {
			return "", err
		}
		return doctor.ID, nil
	default:
		return "", nil
	}
}

func profileCacheKey(userID string, role authorization.Role) string {
	return fmt.Sprintf(constvars.RedisKeyPrefixProfile, role, userID)
}

// unquote strips the JSON quoting added by the redis repository.
func unquote(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}
