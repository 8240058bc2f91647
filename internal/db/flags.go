package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakelock-io/staking-ledger/internal/db/model"
)

func (db *Database) GetPausedFlag(ctx context.Context) (bool, error) {
	var result model.LedgerFlagsDocument
	err := db.collection(model.LedgerFlagsCollection).
		FindOne(ctx, bson.M{}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// If no document exists, the ledger has never been paused
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return result.Paused, nil
}

func (db *Database) SetPausedFlag(ctx context.Context, paused bool) error {
	update := bson.M{"$set": bson.M{"paused": paused}}
	opts := options.Update().SetUpsert(true)
	_, err := db.collection(model.LedgerFlagsCollection).
		UpdateOne(ctx, bson.M{}, update, opts)
	return err
}
