package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"hospital-service/internal/app/config"
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func NewMongoDB(driverConfig *config.DriverConfig) *mongo.Client {
	connectionString := fmt.Sprintf(
		"mongodb://%s:%s",
		driverConfig.MongoDB.Host,
		driverConfig.MongoDB.Port,
	)
	if driverConfig.MongoDB.Username != "" {
		connectionString = fmt.Sprintf(
			"mongodb://%s:%s@%s:%s",
			driverConfig.MongoDB.Username,
			driverConfig.MongoDB.Password,
			driverConfig.MongoDB.Host,
			driverConfig.MongoDB.Port,
		)
	}

	// ObjectIDs decode into the string ids used by the models.
	dbOptions := options.Client().
		ApplyURI(connectionString).
		SetBSONOptions(&options.BSONOptions{ObjectIDAsHexString: true})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, dbOptions)
	if err != nil {
		log.Fatalf("Failed to connect to mongo database: %s", err.Error())
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to ping or test the connection to mongo database: %s", err.Error())
	}
	log.Println("Successfully connected to mongo database")

	if err := EnsureIndexes(ctx, client.Database(driverConfig.MongoDB.DbName)); err != nil {
		log.Fatalf("Failed to create mongo indexes: %s", err.Error())
	}
	log.Println("Successfully ensured mongo indexes")
	return client
}

// EnsureIndexes creates the uniqueness constraints the services rely on. The
// appointment index only covers slot-holding statuses, so a cancelled booking
// frees its slot.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		constvars.MongoCollectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		constvars.MongoCollectionDoctors: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "licenseNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "specialization", Value: 1}, {Key: "isApproved", Value: 1}}},
		},
		constvars.MongoCollectionPatients: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		constvars.MongoCollectionAppointments: {
			{
				Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "date", Value: 1}, {Key: "timeSlot", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetName("doctor_slot_active").
					SetPartialFilterExpression(bson.M{"status": bson.M{"$in": models.ActiveAppointmentStatuses}}),
			},
			{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "date", Value: -1}}},
		},
		constvars.MongoCollectionMedicalRecords: {
			{Keys: bson.D{{Key: "patientId", Value: 1}}},
			{Keys: bson.D{{Key: "doctorId", Value: 1}}},
		},
		constvars.MongoCollectionPrescriptions: {
			{Keys: bson.D{{Key: "patientId", Value: 1}}},
			{Keys: bson.D{{Key: "doctorId", Value: 1}}},
		},
		constvars.MongoCollectionInvoices: {
			{Keys: bson.D{{Key: "invoiceNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "paymentStatus", Value: 1}}},
		},
		constvars.MongoCollectionAuditLogs: {
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "actorId", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("collection %s: %w", collection, err)
		}
	}
	return nil
}
