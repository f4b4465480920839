package document

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"
)

// HashLength is the width of the hash_code column in all three tables.
const HashLength = 32

// DeriveHash computes the verification token for a submission: sha256
// over the canonical form of the submitted fields, the configured salt
// and the submission instant, truncated to 32 lowercase hex characters.
// It is pure and is computed exactly once, before the row is inserted.
func DeriveHash(fields map[string]string, salt string, issuedAt time.Time) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		// json.Marshal on a string never fails
		v, _ := json.Marshal(fields[k])
		b.WriteString(k)
		b.WriteByte(':')
		b.Write(v)
		b.WriteByte('|')
	}
	b.WriteString(salt)
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(issuedAt.UnixNano(), 10))

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:HashLength]
}
