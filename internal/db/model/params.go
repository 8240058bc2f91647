package model

const GlobalParamsCollection = "global_params"

type BaseParamsDocument struct {
	Type    string `bson:"type"`
	Version uint32 `bson:"version"`
}

// PlanParamsDocument holds the immutable plan parameters. Written exactly
// once, on the first service start; the enrollment deadline is never
// recomputed afterwards.
type PlanParamsDocument struct {
	BaseParamsDocument  `bson:",inline"`
	DurationSeconds     int64  `bson:"duration_seconds"`
	InterestRatePercent uint64 `bson:"interest_rate_percent"`
	CreatedAt           int64  `bson:"created_at"`
	EnrollmentDeadline  int64  `bson:"enrollment_deadline"`
}
