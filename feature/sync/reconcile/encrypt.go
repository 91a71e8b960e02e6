package reconcile

import (
	"fmt"

	"farmer-registry/core/fieldcrypt"
	"farmer-registry/feature/farmer/models"
)

// sealNRC encrypts the record's NRC and removes the plaintext from the record.
// The plaintext is removed even when sealing fails, so it can never be stored.
// Records without an NRC are left untouched and return nil, nil.
func sealNRC(rec *models.IncomingRecord, sealer Sealer) (sealed *fieldcrypt.Sealed, err error) {
	nrc := rec.PersonalInfo.NRC
	if nrc == nil || *nrc == "" {
		return nil, nil
	}
	rec.PersonalInfo.NRC = nil

	defer func() {
		if r := recover(); r != nil {
			sealed, err = nil, &EncryptionError{Field: "NRC", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	out, err := sealer.Encrypt(*nrc)
	if err != nil {
		return nil, &EncryptionError{Field: "NRC", Err: err}
	}
	return &out, nil
}
