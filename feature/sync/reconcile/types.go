package reconcile

import (
	"context"
	"fmt"

	"farmer-registry/core/fieldcrypt"
	"farmer-registry/feature/farmer/models"
)

// Status is the per-record result of a reconciliation.
type Status string

const (
	StatusCreated Status = "created"
	StatusUpdated Status = "updated"
	StatusError   Status = "error"
)

// Outcome reports what happened to one submitted record. Outcomes are returned
// in the order of the submitted records.
type Outcome struct {
	TempID   *string  `json:"temp_id"`
	FarmerID *string  `json:"farmer_id"`
	Status   Status   `json:"status"`
	Errors   []string `json:"errors"`
}

// Signal names the identity field used to find an existing farmer.
type Signal string

const (
	SignalNone    Signal = "none"
	SignalTempID  Signal = "temp_id"
	SignalNRCHash Signal = "nrc_hash"
	SignalPhone   Signal = "phone_primary"
)

// ResolutionError means the store could not answer an identity lookup. It aborts
// the whole batch: later outcomes could not be trusted.
type ResolutionError struct {
	Signal Signal
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("identity resolution by %s failed: %v", e.Signal, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// EncryptionError means a sensitive field could not be sealed. It is recovered:
// the field is dropped and the record continues.
type EncryptionError struct {
	Field string
	Err   error
}

func (e *EncryptionError) Error() string {
	return fmt.Sprintf("%s encryption failed: %v", e.Field, e.Err)
}

func (e *EncryptionError) Unwrap() error { return e.Err }

// Validator checks a record and returns every violation.
type Validator interface {
	Validate(rec models.IncomingRecord) (bool, []string)
}

// Sealer encrypts one sensitive value.
type Sealer interface {
	Encrypt(plaintext string) (fieldcrypt.Sealed, error)
}

// Lookup is the read side of the farmer store used for identity resolution.
type Lookup interface {
	FindByTempID(ctx context.Context, tempID string) (*models.Farmer, error)
	FindByNRCHash(ctx context.Context, hash string) (*models.Farmer, error)
	FindByPhone(ctx context.Context, phone string) (*models.Farmer, error)
}

// Writer is the write side of the farmer store.
type Writer interface {
	Create(ctx context.Context, farmer *models.Farmer) error
	Save(ctx context.Context, farmer *models.Farmer) error
}

// Store combines Lookup and Writer.
type Store interface {
	Lookup
	Writer
}
