package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stakelock-io/staking-ledger/internal/db/model"
	"github.com/stakelock-io/staking-ledger/internal/types"
)

func (db *Database) SaveNewStakeRecord(
	ctx context.Context, record *model.StakeRecordDocument,
) error {
	_, err := db.collection(model.StakeRecordCollection).
		InsertOne(ctx, record)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     record.StakerAddress,
						Message: "stake record already exists",
					}
				}
			}
		}
		return err
	}
	return nil
}

func (db *Database) GetStakeRecord(
	ctx context.Context, stakerAddress string,
) (*model.StakeRecordDocument, error) {
	filter := bson.M{"_id": stakerAddress}

	res := db.collection(model.StakeRecordCollection).
		FindOne(ctx, filter)

	var record model.StakeRecordDocument
	if err := res.Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     stakerAddress,
				Message: "stake record not found",
			}
		}
		return nil, err
	}

	return &record, nil
}

func (db *Database) MarkStakeClaimed(
	ctx context.Context,
	stakerAddress string,
	qualifiedPreviousStates []types.StakeState,
	reward uint64,
	claimedAt int64,
) error {
	qualifiedStateStrs := make([]string, len(qualifiedPreviousStates))
	for i, state := range qualifiedPreviousStates {
		qualifiedStateStrs[i] = state.String()
	}

	filter := bson.M{
		"_id":   stakerAddress,
		"state": bson.M{"$in": qualifiedStateStrs},
	}

	update := bson.M{
		"$set": bson.M{
			"state":      types.StateClaimed.String(),
			"reward":     reward,
			"claimed_at": claimedAt,
		},
	}

	res := db.collection(model.StakeRecordCollection).
		FindOneAndUpdate(ctx, filter, update)

	if res.Err() != nil {
		if errors.Is(res.Err(), mongo.ErrNoDocuments) {
			return &NotFoundError{
				Key:     stakerAddress,
				Message: "stake record not found or current state is not qualified for claim",
			}
		}
		return res.Err()
	}

	return nil
}

func (db *Database) RevertStakeClaimed(ctx context.Context, stakerAddress string) error {
	filter := bson.M{
		"_id":   stakerAddress,
		"state": types.StateClaimed.String(),
	}

	update := bson.M{
		"$set":   bson.M{"state": types.StateActive.String()},
		"$unset": bson.M{"reward": "", "claimed_at": ""},
	}

	res := db.collection(model.StakeRecordCollection).
		FindOneAndUpdate(ctx, filter, update)

	if res.Err() != nil {
		if errors.Is(res.Err(), mongo.ErrNoDocuments) {
			return &NotFoundError{
				Key:     stakerAddress,
				Message: "claimed stake record not found",
			}
		}
		return res.Err()
	}

	return nil
}

func (db *Database) GetAllStakeRecords(ctx context.Context) ([]model.StakeRecordDocument, error) {
	cursor, err := db.collection(model.StakeRecordCollection).
		Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []model.StakeRecordDocument
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CountStakeRecords is the total stakers counter. Records are never deleted,
// so the count only ever grows.
func (db *Database) CountStakeRecords(ctx context.Context) (uint64, error) {
	count, err := db.collection(model.StakeRecordCollection).
		CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return uint64(count), nil
}
