package mongodb

import (
	"context"
	"errors"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type transactor struct {
	Client *mongo.Client
	Log    *zap.Logger
}

func NewTransactor(client *mongo.Client, logger *zap.Logger) contracts.Transactor {
	return &transactor{
		Client: client,
		Log:    logger,
	}
}

// WithTransaction runs fn in a multi-document transaction. The driver retries fn
// on transient errors, so fn must be safe to run more than once.
func (t *transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	session, err := t.Client.StartSession()
	if err != nil {
		return exceptions.ErrMongoDBTransaction(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessionCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessionCtx)
	})
	if err != nil {
		t.Log.Error("transactor.WithTransaction aborted",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			return err
		}
		return exceptions.ErrMongoDBTransaction(err)
	}
	return nil
}
