package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestRequireTransactions(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("replica set member", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "isWritablePrimary", Value: true},
			bson.E{Key: "setName", Value: "rs0"},
		))
		assert.NoError(mt, RequireTransactions(context.Background(), mt.Client))
	})

	mt.Run("mongos", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "isWritablePrimary", Value: true},
			bson.E{Key: "msg", Value: "isdbgrid"},
		))
		assert.NoError(mt, RequireTransactions(context.Background(), mt.Client))
	})

	mt.Run("standalone", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "isWritablePrimary", Value: true},
		))
		err := RequireTransactions(context.Background(), mt.Client)
		assert.ErrorIs(mt, err, ErrTransactionsUnsupported)
	})

	mt.Run("command failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad hello",
			Name:    "BadValue",
		}))
		err := RequireTransactions(context.Background(), mt.Client)
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrTransactionsUnsupported)
	})
}
