package storage

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrVersionConflict is returned when a conditional write lost an optimistic
// locking race and should be retried against fresh state.
var ErrVersionConflict = errors.New("version conflict")

// ErrAlreadySettled is returned when a settlement reference is written to an
// entity that already carries one. On-chain references are write-once.
var ErrAlreadySettled = errors.New("entity already settled")

// ErrAlreadyExists is returned when a create collides with an existing record.
var ErrAlreadyExists = errors.New("record already exists")
