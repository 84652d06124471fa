// Package ident validates and generates the 24-hex-character document
// identifiers used by both collections.
package ident

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Valid reports whether s is a 24-character hexadecimal identifier.
func Valid(s string) bool {
	return primitive.IsValidObjectID(s)
}

// New returns a fresh identifier.
func New() string {
	return primitive.NewObjectID().Hex()
}

// Canonical returns the lowercase form of s so that ids differing only in
// letter case compare equal.
func Canonical(s string) string {
	return strings.ToLower(s)
}
