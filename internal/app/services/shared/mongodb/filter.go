package mongodb

import (
	"hospital-service/internal/app/services/core/authorization"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScopeFilter translates a visibility predicate into a mongo filter. The second
// value is false when the predicate matches nothing and the query can be skipped.
func ScopeFilter(scope authorization.Predicate) (bson.M, bool) {
	filter := bson.M{}
	switch scope.Kind {
	case authorization.PredicateNone:
		return nil, false
	case authorization.PredicateMatch:
		if scope.Field == authorization.FieldID {
			objectID, err := primitive.ObjectIDFromHex(scope.Value)
			if err != nil {
				return nil, false
			}
			filter["_id"] = objectID
		} else {
			filter[scope.Field] = scope.Value
		}
	}
	if scope.ApprovedOnly {
		filter["isApproved"] = true
	}
	return filter, true
}

// ObjectIDs converts hex ids, skipping the ones that are not valid object ids.
func ObjectIDs(ids []string) []primitive.ObjectID {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, objectID)
	}
	return objectIDs
}
