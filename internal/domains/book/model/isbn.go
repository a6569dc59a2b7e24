package model

import "strings"

// IsValidISBN accepts ISBN-10 or ISBN-13, ignoring hyphens and spaces.
//
// ISBN-13 must start with 978 or 979 and satisfy the weighted checksum
// (weights 1,3,1,3,... over the first 12 digits). ISBN-10 is only checked to
// be ten digit characters; the checksum is deliberately not enforced, which
// means letter check digits ('X') are rejected and some invalid ISBN-10s are
// accepted. Callers relying on stricter ISBN-10 validation must not get it
// silently from here.
func IsValidISBN(isbn string) bool {
	clean := normalizeISBN(isbn)

	switch len(clean) {
	case 13:
		if !strings.HasPrefix(clean, "978") && !strings.HasPrefix(clean, "979") {
			return false
		}
		return isbn13ChecksumOK(clean)
	case 10:
		return allDigits(clean)
	default:
		return false
	}
}

func normalizeISBN(isbn string) string {
	var b strings.Builder
	b.Grow(len(isbn))
	for _, r := range isbn {
		if r == '-' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isbn13ChecksumOK(clean string) bool {
	if !allDigits(clean) {
		return false
	}
	sum := 0
	for i := 0; i < 12; i++ {
		digit := int(clean[i] - '0')
		if i%2 == 0 {
			sum += digit
		} else {
			sum += digit * 3
		}
	}
	check := (10 - sum%10) % 10
	return check == int(clean[12]-'0')
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
