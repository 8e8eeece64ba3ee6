// Package barcode generates and parses the specimen barcode strings printed
// on tube labels. Format: {TYPE}-{TIMESTAMP}-{RANDOM}, e.g.
// DNA-20250101000000-4821. Uniqueness is ultimately enforced by the
// database's unique constraint; the random suffix only makes collisions
// within the same second unlikely, and callers regenerate on conflict.
package barcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"biobank-backend/internal/timeutil"
)

var pattern = regexp.MustCompile(`^([A-Z0-9]{2,8})-(\d{14})-(\d{4})$`)

// Generate returns a fresh barcode for the given type code.
func Generate(typeCode string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("barcode random suffix: %w", err)
	}
	ts := timeutil.Format(timeutil.Now(), timeutil.BarcodeLayout)
	return fmt.Sprintf("%s-%s-%04d", strings.ToUpper(typeCode), ts, n.Int64()), nil
}

// Parse validates a scanned barcode and returns its components.
func Parse(code string) (typeCode string, ts time.Time, err error) {
	m := pattern.FindStringSubmatch(code)
	if m == nil {
		return "", time.Time{}, fmt.Errorf("malformed barcode %q", code)
	}
	ts, err = time.Parse(timeutil.BarcodeLayout, m[2])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("malformed barcode %q: %w", code, err)
	}
	return m[1], ts, nil
}

// Valid reports whether code matches the barcode format.
func Valid(code string) bool {
	_, _, err := Parse(code)
	return err == nil
}

// ValidTypeCode reports whether t can be used as a barcode type component.
func ValidTypeCode(t string) bool {
	if len(t) < 2 || len(t) > 8 {
		return false
	}
	for _, r := range t {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
