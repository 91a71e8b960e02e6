package farmer

import (
	"context"
	"crypto/subtle"
	"errors"

	"farmer-registry/core/fieldcrypt"
	"farmer-registry/feature/farmer/models"

	"go.uber.org/zap"
)

// ErrNoNRC is returned when verifying the NRC of a farmer registered without one.
var ErrNoNRC = errors.New("farmer has no NRC on record")

// Reader is the part of the store the admin service needs.
type Reader interface {
	FindByFarmerID(ctx context.Context, farmerID string) (*models.Farmer, error)
}

// Service serves administrative reads of the registry.
type Service struct {
	store  Reader
	crypt  *fieldcrypt.Encryptor
	logger *zap.Logger
}

// NewService creates a new farmer service.
func NewService(st Reader, crypt *fieldcrypt.Encryptor, logger *zap.Logger) *Service {
	return &Service{store: st, crypt: crypt, logger: logger}
}

// Get returns the farmer with the given registry id.
func (s *Service) Get(ctx context.Context, farmerID string) (*models.Farmer, error) {
	return s.store.FindByFarmerID(ctx, farmerID)
}

// VerifyNRC reports whether candidate is the NRC stored for the farmer. The
// ciphertext must open with the candidate's nonce and its keyed hash must match.
func (s *Service) VerifyNRC(ctx context.Context, farmerID, candidate string) (bool, error) {
	f, err := s.store.FindByFarmerID(ctx, farmerID)
	if err != nil {
		return false, err
	}
	if f.NRCEncrypted == nil || f.NRCHash == nil {
		return false, ErrNoNRC
	}

	plain, err := s.crypt.Decrypt(*f.NRCEncrypted, candidate)
	if errors.Is(err, fieldcrypt.ErrMismatch) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	hashOK := subtle.ConstantTimeCompare([]byte(s.crypt.Hash(candidate)), []byte(*f.NRCHash)) == 1
	return plain == candidate && hashOK, nil
}
