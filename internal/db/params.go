package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stakelock-io/staking-ledger/internal/db/model"
)

const (
	// planParamsVersion is hardcoded to 0 as the plan parameters are
	// immutable after creation. The versioning stays in place to keep the
	// same document shape as other global params.
	planParamsVersion = 0
	planParamsType    = "PLAN"
)

// SavePlanParams persists the plan exactly once. A DuplicateKeyError means
// the plan already exists and the stored copy stays authoritative.
func (db *Database) SavePlanParams(
	ctx context.Context, params *model.PlanParamsDocument,
) error {
	params.Type = planParamsType
	params.Version = planParamsVersion

	_, err := db.collection(model.GlobalParamsCollection).InsertOne(ctx, params)
	// nil check is inside IsDuplicateKeyError
	if mongo.IsDuplicateKeyError(err) {
		return &DuplicateKeyError{
			Key:     planParamsType,
			Message: "plan parameters already exist",
		}
	}
	return err
}

func (db *Database) GetPlanParams(ctx context.Context) (*model.PlanParamsDocument, error) {
	filter := bson.M{
		"type":    planParamsType,
		"version": planParamsVersion,
	}

	res := db.collection(model.GlobalParamsCollection).FindOne(ctx, filter)

	var params model.PlanParamsDocument
	if err := res.Decode(&params); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     planParamsType,
				Message: "plan parameters not found",
			}
		}
		return nil, err
	}

	return &params, nil
}
