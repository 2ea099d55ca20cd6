package mongodb

import (
	"fmt"

	"hospital-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertedHex returns the generated _id of an insert as a hex string.
func InsertedHex(result *mongo.InsertOneResult) (string, error) {
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", exceptions.ErrMongoDBInsertDocument(fmt.Errorf("inserted id has type %T, want ObjectID", result.InsertedID))
	}
	return oid.Hex(), nil
}
