package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestInsertedHex(t *testing.T) {
	t.Run("generated object id", func(t *testing.T) {
		oid := primitive.NewObjectID()
		hex, err := InsertedHex(&mongo.InsertOneResult{InsertedID: oid})
		require.NoError(t, err)
		assert.Equal(t, oid.Hex(), hex)
	})

	t.Run("caller supplied string id", func(t *testing.T) {
		_, err := InsertedHex(&mongo.InsertOneResult{InsertedID: "65f0c0ffee0000000000beef"})
		assert.Error(t, err)
	})
}
