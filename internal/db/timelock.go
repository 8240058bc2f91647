package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakelock-io/staking-ledger/internal/db/model"
)

func (db *Database) SaveNewTimeLock(
	ctx context.Context, stakerAddress string, maturityTime int64,
) error {
	tlDoc := model.NewTimeLockDocument(stakerAddress, maturityTime)
	_, err := db.collection(model.TimeLockCollection).
		InsertOne(ctx, tlDoc)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     tlDoc.StakerAddress,
						Message: "timelock already exists",
					}
				}
			}
		}
		return err
	}
	return nil
}

func (db *Database) FindMaturedTimeLocks(ctx context.Context, now int64, limit uint64) ([]model.TimeLockDocument, error) {
	filter := bson.M{"maturity_time": bson.M{"$lte": now}}

	opts := options.Find().SetLimit(int64(limit))
	cursor, err := db.collection(model.TimeLockCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var timelocks []model.TimeLockDocument
	if err = cursor.All(ctx, &timelocks); err != nil {
		return nil, err
	}

	return timelocks, nil
}

func (db *Database) DeleteTimeLock(ctx context.Context, stakerAddress string) error {
	filter := bson.M{"_id": stakerAddress}

	result, err := db.collection(model.TimeLockCollection).DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete timelock for staker %v: %w", stakerAddress, err)
	}

	// Check if any document was deleted
	if result.DeletedCount == 0 {
		return fmt.Errorf("no timelock found for staker %v", stakerAddress)
	}

	return nil
}
