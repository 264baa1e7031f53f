package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateEventID returns the public identifier stored on an event, distinct
// from the records-store record id. It is embedded in filter formulas and in
// subscriber links, so it stays alphanumeric.
func GenerateEventID() string {
	id, err := gonanoid.Generate(idAlphabet, 12)
	if err != nil {
		return ""
	}
	return "evt_" + id
}

// GenerateID returns a short general-purpose identifier.
func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}
