package testutil

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/stakelock-io/staking-ledger/internal/db/model"
	"github.com/stakelock-io/staking-ledger/pkg"
)

// RandomAlphaNum generates random alphanumeric string
// in case length <= 0 it returns empty string
func RandomAlphaNum(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	if length <= 0 {
		return "", fmt.Errorf("length must be greater than 0")
	}

	randomString := make([]byte, length)
	for i := range randomString {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		randomString[i] = charset[num.Int64()]
	}

	return string(randomString), nil
}

// RandomStakerAddress returns a well formed staker address with random
// payload bytes.
func RandomStakerAddress() string {
	data := make([]byte, 20)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return pkg.MustNewStakerAddress(data)
}

// RandomStakeRecord returns an active stake record with plausible values.
func RandomStakeRecord() *model.StakeRecordDocument {
	startTime := gofakeit.Date().Unix()
	return model.NewStakeRecordDocument(
		RandomStakerAddress(),
		startTime,
		startTime+int64(gofakeit.Number(3600, 365*24*3600)),
		uint64(gofakeit.Number(1, 1_000_000)),
	)
}
