package patients

import (
	"context"
	"errors"

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

type PatientMongoRepository struct {
	Collection *mongo.Collection
}

func NewPatientMongoRepository(db *mongo.Client, dbName string) contracts.PatientRepository {
	return &PatientMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPatients),
	}
}

func (repo *PatientMongoRepository) CreatePatient(ctx context.Context, patient *models.Patient) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, patient)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrAlreadyExists(err, constvars.MongoCollectionPatients)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return mongodb.InsertedHex(result)
}

func (repo *PatientMongoRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	objectID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	return repo.findOne(ctx, bson.M{"_id": objectID})
}

func (repo *PatientMongoRepository) FindByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	return repo.findOne(ctx, bson.M{"userId": userID})
}

func (repo *PatientMongoRepository) FindByIDs(ctx context.Context, patientIDs []string, pagination *requests.Pagination) ([]models.Patient, int64, error) {
	objectIDs := mongodb.ObjectIDs(patientIDs)
	if len(objectIDs) == 0 {
		return []models.Patient{}, 0, nil
	}
	query := bson.M{"_id": bson.M{"$in": objectIDs}}
	return mongodb.FindPage[models.Patient](ctx, repo.Collection, query, bson.D{{Key: "createdAt", Value: -1}}, pagination)
}

func (repo *PatientMongoRepository) FindAll(ctx context.Context, scope authorization.Predicate, pagination *requests.Pagination) ([]models.Patient, int64, error) {
	query, ok := mongodb.ScopeFilter(scope)
	if !ok {
		return []models.Patient{}, 0, nil
	}
	return mongodb.FindPage[models.Patient](ctx, repo.Collection, query, bson.D{{Key: "createdAt", Value: -1}}, pagination)
}

func (repo *PatientMongoRepository) UpdatePatient(ctx context.Context, patient *models.Patient) error {
	objectID, err := primitive.ObjectIDFromHex(patient.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	document := *patient
	document.ID = ""

	_, err = repo.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": document})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *PatientMongoRepository) DeleteByID(ctx context.Context, patientID string) error {
	objectID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err = repo.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (repo *PatientMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Patient, error) {
	var patient models.Patient
	err := repo.Collection.FindOne(ctx, filter).Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &patient, nil
}
