package taxid

import (
	"regexp"
	"strings"
)

var (
	panPattern   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	tanPattern   = regexp.MustCompile(`^[A-Z]{4}[0-9]{5}[A-Z]$`)
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
)

// Normalize upper-cases and trims an identifier before storage or comparison.
func Normalize(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

func ValidPAN(v string) bool {
	return panPattern.MatchString(Normalize(v))
}

func ValidTAN(v string) bool {
	return tanPattern.MatchString(Normalize(v))
}

// ValidGSTIN checks the 15 character layout; the checksum digit is not verified.
func ValidGSTIN(v string) bool {
	return gstinPattern.MatchString(Normalize(v))
}

// StateCode returns the two digit state prefix of a GSTIN.
func StateCode(gstin string) string {
	g := Normalize(gstin)
	if len(g) < 2 {
		return ""
	}
	return g[:2]
}

// PANFromGSTIN extracts the embedded PAN (characters 3 to 12).
func PANFromGSTIN(gstin string) string {
	g := Normalize(gstin)
	if !gstinPattern.MatchString(g) {
		return ""
	}
	return g[2:12]
}
