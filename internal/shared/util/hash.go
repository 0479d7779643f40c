package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// OwnerStorageKey returns a filesystem-safe namespace for an owner id.
func OwnerStorageKey(ownerID int64) string {
	sum := sha256.Sum256([]byte(strconv.FormatInt(ownerID, 10)))
	return hex.EncodeToString(sum[:])
}
