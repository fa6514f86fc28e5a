package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrTransactionsUnsupported is returned when the server is a standalone mongod.
var ErrTransactionsUnsupported = errors.New("MongoDB deployment does not support transactions: a replica set or sharded cluster is required")

// RequireTransactions checks that the connected deployment is a replica set
// member or a mongos, since reminder batches commit inside transactions.
func RequireTransactions(ctx context.Context, client *mongo.Client) error {
	var hello struct {
		SetName string `bson:"setName"`
		Msg     string `bson:"msg"`
	}
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		return fmt.Errorf("failed to inspect MongoDB topology: %w", err)
	}
	if hello.SetName == "" && hello.Msg != "isdbgrid" {
		return ErrTransactionsUnsupported
	}
	return nil
}
