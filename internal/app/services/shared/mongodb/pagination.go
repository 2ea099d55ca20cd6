package mongodb

import (
	"context"

	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindPage runs a paginated find and the matching count.
func FindPage[T any](ctx context.Context, collection *mongo.Collection, filter bson.M, sort bson.D, pagination *requests.Pagination) ([]T, int64, error) {
	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	findOptions := options.Find().SetSort(sort)
	if pagination != nil {
		findOptions.SetSkip(pagination.Skip()).SetLimit(pagination.Limit())
	}

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return results, total, nil
}
