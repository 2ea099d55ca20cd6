package medical_records

import (
	"context"
	"errors"
	"time"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/app/services/shared/mongodb"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MedicalRecordMongoRepository struct {
	Collection *mongo.Collection
}

func NewMedicalRecordMongoRepository(db *mongo.Client, dbName string) contracts.MedicalRecordRepository {
	return &MedicalRecordMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionMedicalRecords),
	}
}

func (repo *MedicalRecordMongoRepository) CreateMedicalRecord(ctx context.Context, record *models.MedicalRecord) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, record)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return mongodb.InsertedHex(result)
}

func (repo *MedicalRecordMongoRepository) FindByID(ctx context.Context, recordID string) (*models.MedicalRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var record models.MedicalRecord
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &record, nil
}

func (repo *MedicalRecordMongoRepository) FindAll(ctx context.Context, scope authorization.Predicate, pagination *requests.Pagination) ([]models.MedicalRecord, int64, error) {
	query, ok := mongodb.ScopeFilter(scope)
	if !ok {
		return []models.MedicalRecord{}, 0, nil
	}
	return mongodb.FindPage[models.MedicalRecord](ctx, repo.Collection, query, bson.D{{Key: "createdAt", Value: -1}}, pagination)
}

func (repo *MedicalRecordMongoRepository) UpdateMedicalRecord(ctx context.Context, record *models.MedicalRecord) error {
	objectID, err := primitive.ObjectIDFromHex(record.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	// Attachments are only changed through AddAttachment and RemoveAttachment.
	update := bson.M{"$set": bson.M{
		"diagnosis":    record.Diagnosis,
		"symptoms":     record.Symptoms,
		"treatment":    record.Treatment,
		"notes":        record.Notes,
		"vitalSigns":   record.VitalSigns,
		"followUpDate": record.FollowUpDate,
		"updatedAt":    record.UpdatedAt,
	}}
	_, err = repo.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *MedicalRecordMongoRepository) AddAttachment(ctx context.Context, recordID string, attachment *models.Attachment) error {
	objectID, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{
		"$push": bson.M{"attachments": attachment},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := repo.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrNotFound(nil, "medical record")
	}
	return nil
}

func (repo *MedicalRecordMongoRepository) RemoveAttachment(ctx context.Context, recordID, attachmentID string) error {
	objectID, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{
		"$pull": bson.M{"attachments": bson.M{"id": attachmentID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	_, err = repo.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *MedicalRecordMongoRepository) DeleteByID(ctx context.Context, recordID string) error {
	objectID, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err = repo.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
