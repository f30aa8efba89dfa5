package idgen

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// NewSpotID returns a random version 4 UUID for a spot
func NewSpotID() uuid.UUID {
	return uuid.New()
}

// NewTicketID returns a random version 4 UUID for a ticket.
// Ticket ids are the only proof of possession a holder has, so they come
// straight from the crypto random source.
func NewTicketID() uuid.UUID {
	return uuid.New()
}

// NewSlotID derives a slot id by keying BLAKE2b with fresh random bytes and
// hashing the slot payload. Two slots with identical payloads still get
// different ids. The result is formatted as a version 4 UUID.
func NewSlotID(payload []byte) (uuid.UUID, error) {
	key, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to read random key: %w", err)
	}

	h, err := blake2b.New(16, key[:])
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to init blake2b: %w", err)
	}
	h.Write(payload)

	id, err := uuid.FromBytes(h.Sum(nil))
	if err != nil {
		return uuid.Nil, err
	}
	id[6] = (id[6] & 0x0f) | 0x40
	id[8] = (id[8] & 0x3f) | 0x80
	return id, nil
}

// Parse parses a canonical id string
func Parse(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
