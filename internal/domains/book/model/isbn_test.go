package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidISBN13(t *testing.T) {
	t.Run("valid with correct checksum", func(t *testing.T) {
		assert.True(t, IsValidISBN("9780306406157"))
		assert.True(t, IsValidISBN("9791234567896"))
	})

	t.Run("checksum mismatch rejected", func(t *testing.T) {
		assert.False(t, IsValidISBN("9780306406158"))
		assert.False(t, IsValidISBN("9780306406150"))
	})

	t.Run("hyphens and spaces ignored", func(t *testing.T) {
		assert.True(t, IsValidISBN("978-0-306-40615-7"))
		assert.True(t, IsValidISBN("978 0 306 40615 7"))
	})

	t.Run("prefix must be 978 or 979", func(t *testing.T) {
		assert.False(t, IsValidISBN("9770306406157"))
		assert.False(t, IsValidISBN("1234567890123"))
	})

	t.Run("non-digit characters rejected", func(t *testing.T) {
		assert.False(t, IsValidISBN("978030640615X"))
		assert.False(t, IsValidISBN("978a306406157"))
	})
}

func TestIsValidISBN10(t *testing.T) {
	t.Run("any ten digits accepted", func(t *testing.T) {
		assert.True(t, IsValidISBN("0306406152"))
		// Checksum is not enforced for ten-digit numbers.
		assert.True(t, IsValidISBN("0306406153"))
		assert.True(t, IsValidISBN("1234567890"))
	})

	t.Run("hyphenated form accepted", func(t *testing.T) {
		assert.True(t, IsValidISBN("0-306-40615-2"))
	})

	t.Run("letter check digit rejected", func(t *testing.T) {
		assert.False(t, IsValidISBN("097522980X"))
	})
}

func TestIsValidISBNLength(t *testing.T) {
	cases := []string{"", "123", "123456789", "12345678901", "123456789012", "12345678901234"}
	for _, c := range cases {
		assert.False(t, IsValidISBN(c), "input %q", c)
	}
}
