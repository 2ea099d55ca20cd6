package appointments

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

// CreateAppointment surfaces a violation of the doctor_slot_active index as a
// slot conflict; that index is what settles concurrent bookings.
func (repo *AppointmentMongoRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, appointment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrTimeSlotConflict(err)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return mongodb.InsertedHex(result)
}

func (repo *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var appointment models.Appointment
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (repo *AppointmentMongoRepository) FindAll(ctx context.Context, scope authorization.Predicate, filter *requests.AppointmentFilter, pagination *requests.Pagination) ([]models.Appointment, int64, error) {
	query, ok := mongodb.ScopeFilter(scope)
	if !ok {
		return []models.Appointment{}, 0, nil
	}
	if filter != nil {
		if filter.Status != "" {
			query["status"] = filter.Status
		}
		if filter.Date != "" {
			query["date"] = filter.Date
		}
	}
	sort := bson.D{{Key: "date", Value: -1}, {Key: "timeSlot", Value: 1}}
	return mongodb.FindPage[models.Appointment](ctx, repo.Collection, query, sort, pagination)
}

func (repo *AppointmentMongoRepository) ExistsActiveSlot(ctx context.Context, doctorID, date, timeSlot, excludeID string) (bool, error) {
	filter := bson.M{
		"doctorId": doctorID,
		"date":     date,
		"timeSlot": timeSlot,
		"status":   bson.M{"$in": models.ActiveAppointmentStatuses},
	}
	if excludeID != "" {
		if objectID, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			filter["_id"] = bson.M{"$ne": objectID}
		}
	}

	count, err := repo.Collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count > 0, nil
}

func (repo *AppointmentMongoRepository) DistinctPatientIDs(ctx context.Context, doctorID string) ([]string, error) {
	values, err := repo.Collection.Distinct(ctx, "patientId", bson.M{"doctorId": doctorID})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	patientIDs := make([]string, 0, len(values))
	for _, value := range values {
		if id, ok := value.(string); ok && id != "" {
			patientIDs = append(patientIDs, id)
		}
	}
	return patientIDs, nil
}

func (repo *AppointmentMongoRepository) UpdateAppointment(ctx context.Context, appointment *models.Appointment) error {
	objectID, err := primitive.ObjectIDFromHex(appointment.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	document := *appointment
	document.ID = ""

	_, err = repo.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": document})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrTimeSlotConflict(err)
		}
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *AppointmentMongoRepository) UpdateStatus(ctx context.Context, appointmentID, status string) error {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	result, err := repo.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrNotFound(nil, "appointment")
	}
	return nil
}

func (repo *AppointmentMongoRepository) DeleteByID(ctx context.Context, appointmentID string) error {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err = repo.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
