package reconcile

import (
	"context"
	"errors"

	"farmer-registry/feature/farmer/models"
	"farmer-registry/feature/farmer/store"
)

// Resolver finds the persisted farmer an incoming record refers to.
type Resolver struct {
	lookup Lookup
}

// NewResolver creates a resolver over the given lookups.
func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// SignalFor picks the identity signal of a record: temp_id, then nrc_hash, then
// phone_primary. The first signal present is the only one used.
func SignalFor(rec models.IncomingRecord, nrcHash string) Signal {
	switch {
	case rec.TempID != nil && *rec.TempID != "":
		return SignalTempID
	case nrcHash != "":
		return SignalNRCHash
	case rec.PersonalInfo.PhonePrimary != "":
		return SignalPhone
	default:
		return SignalNone
	}
}

// Resolve performs a single lookup on the record's identity signal. A miss
// returns nil, nil without trying weaker signals. Store failures are returned as
// *ResolutionError.
func (r *Resolver) Resolve(ctx context.Context, rec models.IncomingRecord, nrcHash string) (*models.Farmer, Signal, error) {
	signal := SignalFor(rec, nrcHash)

	var (
		farmer *models.Farmer
		err    error
	)
	switch signal {
	case SignalTempID:
		farmer, err = r.lookup.FindByTempID(ctx, *rec.TempID)
	case SignalNRCHash:
		farmer, err = r.lookup.FindByNRCHash(ctx, nrcHash)
	case SignalPhone:
		farmer, err = r.lookup.FindByPhone(ctx, rec.PersonalInfo.PhonePrimary)
	case SignalNone:
		return nil, signal, nil
	}

	if errors.Is(err, store.ErrNotFound) {
		return nil, signal, nil
	}
	if err != nil {
		return nil, signal, &ResolutionError{Signal: signal, Err: err}
	}
	return farmer, signal, nil
}
