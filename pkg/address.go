package pkg

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// stakerPrefix is the human readable part of every identity known to the
// asset ledger (participants, the owner and the custody account).
const stakerPrefix = "stk"

// ValidateStakerAddress checks that address is a well formed bech32 string
// with the expected prefix. Identity semantics beyond the format are owned
// by the asset ledger.
func ValidateStakerAddress(address string) error {
	hrp, _, err := bech32.Decode(address)
	if err != nil {
		return fmt.Errorf("invalid staker address %q: %w", address, err)
	}
	if hrp != stakerPrefix {
		return fmt.Errorf("invalid staker address prefix %q: expected %q", hrp, stakerPrefix)
	}
	return nil
}

// MustNewStakerAddress encodes data as a staker address. Used by fixtures
// and the dump command, never on the request path.
func MustNewStakerAddress(data []byte) string {
	conv, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		panic(err)
	}
	addr, err := bech32.Encode(stakerPrefix, conv)
	if err != nil {
		panic(err)
	}
	return addr
}
