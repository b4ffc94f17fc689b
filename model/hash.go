package model

import (
	"encoding/hex"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/dashbook/dashbook/errors"
)

const hashStringSize = chainhash.HashSize * 2

// ParseHash validates a 64 character hex block hash, txid or proTxHash.
func ParseHash(s string) (*chainhash.Hash, error) {
	if len(s) != hashStringSize {
		return nil, errors.NewInvalidArgumentError("invalid hash %q: expected %d hex characters", s, hashStringSize)
	}

	if _, err := hex.DecodeString(s); err != nil {
		return nil, errors.NewInvalidArgumentError("invalid hash %q: not hex", s)
	}

	hash, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid hash %q", s, err)
	}

	return hash, nil
}

// IsHex64 reports whether s looks like a hash without allocating one.
func IsHex64(s string) bool {
	if len(s) != hashStringSize {
		return false
	}

	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}

	return true
}

// IsDigits reports whether s is a non-empty string of ascii digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
