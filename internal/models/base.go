package models

import "github.com/google/uuid"

// assignID gives a record an opaque identifier on first insert.
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
