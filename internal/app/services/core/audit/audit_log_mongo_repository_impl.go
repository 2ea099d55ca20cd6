package audit

import (
	"context"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/shared/mongodb"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuditLogMongoRepository struct {
	Collection *mongo.Collection
}

func NewAuditLogMongoRepository(db *mongo.Client, dbName string) contracts.AuditLogRepository {
	return &AuditLogMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAuditLogs),
	}
}

// CreateAuditLog is the only write this repository offers.
func (repo *AuditLogMongoRepository) CreateAuditLog(ctx context.Context, auditLog *models.AuditLog) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, auditLog)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return mongodb.InsertedHex(result)
}

func (repo *AuditLogMongoRepository) FindAll(ctx context.Context, filter *requests.AuditLogFilter, pagination *requests.Pagination) ([]models.AuditLog, int64, error) {
	query := bson.M{}
	if filter != nil {
		if filter.ActorID != "" {
			query["actorId"] = filter.ActorID
		}
		if filter.ResourceType != "" {
			query["resourceType"] = filter.ResourceType
		}
		if filter.Action != "" {
			query["action"] = filter.Action
		}
	}
	return mongodb.FindPage[models.AuditLog](ctx, repo.Collection, query, bson.D{{Key: "timestamp", Value: -1}}, pagination)
}
