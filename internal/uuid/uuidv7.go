// Package uuid generates the identifiers assigned by the SQL stores.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. Version 7 ids sort by creation time, which
// keeps insertion order recoverable from the primary key alone.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to a random v4 id if the clock sequence cannot be read.
		return googleuuid.NewString()
	}
	return id.String()
}

// IsValid checks if a string is a valid UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
