// Package utils holds small helpers shared by the services.
package utils

import (
	"github.com/google/uuid"
)

// Prefixes identify what kind of record an id belongs to when it shows up in
// logs, Redis keys or auth tokens.
const (
	RidePrefix     = "ride"
	EmployeePrefix = "emp"
)

// GenerateID returns a random UUID v4 string.
func GenerateID() string {
	return uuid.New().String()
}

// NewRideID returns a fresh ride identifier such as "ride-1f0c...".
func NewRideID() string {
	return newPrefixedID(RidePrefix)
}

// NewEmployeeID returns a fresh employee identifier such as "emp-9a2e...".
func NewEmployeeID() string {
	return newPrefixedID(EmployeePrefix)
}

func newPrefixedID(prefix string) string {
	return prefix + "-" + GenerateID()
}
