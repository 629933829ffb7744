package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs sort lexicographically by creation
// time, which makes them usable both as partition keys and as sort keys that
// order verification codes by issue time.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
