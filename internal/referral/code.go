// Package referral generates shareable referral codes. Uniqueness is
// probabilistic: a 4-byte random suffix plus a time component, with no
// store lookup. The code column's primary-key constraint catches the
// astronomically unlikely collision.
package referral

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GenerateCode builds a code of the form
// REF-{memberID}-{last 5 digits of unix ms}{8 uppercase hex chars}.
func GenerateCode(memberID string) (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("read random suffix: %w", err)
	}
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(ts) > 5 {
		ts = ts[len(ts)-5:]
	}
	suffix := strings.ToUpper(hex.EncodeToString(buf[:]))
	return fmt.Sprintf("REF-%s-%s%s", memberID, ts, suffix), nil
}

// BuildLink appends the code as a ref query parameter to the base URL.
func BuildLink(baseURL, code string) string {
	return fmt.Sprintf("%s?ref=%s", baseURL, code)
}
