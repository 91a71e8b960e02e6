package reconcile

import (
	"context"
	"errors"
	"fmt"

	"farmer-registry/core/clock"
	"farmer-registry/core/fieldcrypt"
	"farmer-registry/core/metrics"
	"farmer-registry/core/utils"
	"farmer-registry/feature/farmer/models"
	"farmer-registry/feature/farmer/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options tunes a Reconciler.
type Options struct {
	// RecordConcurrency bounds how many records of one batch are processed at
	// once. 1 processes records serially.
	RecordConcurrency int
	// MaxIDAttempts bounds farmer id regeneration after collisions.
	MaxIDAttempts int
}

// Reconciler applies a batch of incoming records to the farmer store.
type Reconciler struct {
	validator Validator
	sealer    Sealer
	resolver  *Resolver
	writer    Writer
	clock     clock.Clock
	metrics   *metrics.Metrics
	logger    *zap.Logger
	opts      Options
}

// New creates a Reconciler.
func New(v Validator, sealer Sealer, st Store, clk clock.Clock, m *metrics.Metrics, logger *zap.Logger, opts Options) *Reconciler {
	if opts.RecordConcurrency <= 0 {
		opts.RecordConcurrency = 1
	}
	if opts.MaxIDAttempts <= 0 {
		opts.MaxIDAttempts = 3
	}
	return &Reconciler{
		validator: v,
		sealer:    sealer,
		resolver:  NewResolver(st),
		writer:    st,
		clock:     clk,
		metrics:   m,
		logger:    logger,
		opts:      opts,
	}
}

// Reconcile processes every record and returns one outcome per record, in input
// order. Record-level problems become error outcomes; only a failed identity
// lookup aborts the batch, in which case no outcomes are returned.
func (r *Reconciler) Reconcile(ctx context.Context, batch []models.IncomingRecord, actor string) ([]Outcome, error) {
	outcomes := make([]Outcome, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.RecordConcurrency)

	for i := range batch {
		g.Go(func() error {
			out, err := r.reconcileOne(gctx, batch[i], actor)
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			outcomes[i] = out
			r.metrics.ObserveRecord(string(out.Status))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (r *Reconciler) reconcileOne(ctx context.Context, rec models.IncomingRecord, actor string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	out := Outcome{TempID: rec.TempID, Errors: []string{}}

	if ok, errs := r.validator.Validate(rec); !ok {
		out.Status = StatusError
		out.Errors = errs
		return out, nil
	}

	sealed, err := sealNRC(&rec, r.sealer)
	if err != nil {
		// Keep the registration; the NRC is dropped and the loss is reported.
		out.Errors = append(out.Errors, err.Error())
		r.metrics.EncryptionDegraded.Inc()
		r.logger.Warn("Record stored without NRC", zap.String("temp_id", utils.Deref(rec.TempID)), zap.Error(err))
	}

	var nrcHash string
	if sealed != nil {
		nrcHash = sealed.Hash
	}

	existing, signal, err := r.resolver.Resolve(ctx, rec, nrcHash)
	if err != nil {
		return Outcome{}, err
	}

	now := r.clock.Now()
	if existing != nil {
		existing.ApplyRecord(rec)
		applySealed(existing, sealed)
		existing.UpdatedAt = &now
		existing.LastModifiedBy = &actor

		if err := r.writer.Save(ctx, existing); err != nil {
			return persistFailure(out, err), nil
		}

		r.logger.Debug("Farmer updated", zap.String("farmer_id", existing.FarmerID), zap.String("signal", string(signal)))
		out.Status = StatusUpdated
		out.FarmerID = &existing.FarmerID
		return out, nil
	}

	farmer := &models.Farmer{
		RegistrationStatus: models.StatusPending,
		CreatedAt:          now,
		CreatedBy:          actor,
	}
	farmer.ApplyRecord(rec)
	applySealed(farmer, sealed)

	if err := r.create(ctx, farmer); err != nil {
		return persistFailure(out, err), nil
	}

	r.logger.Debug("Farmer created", zap.String("farmer_id", farmer.FarmerID), zap.String("signal", string(signal)))
	out.Status = StatusCreated
	out.FarmerID = &farmer.FarmerID
	return out, nil
}

// create assigns a fresh farmer id, retrying when it collides with an existing one.
func (r *Reconciler) create(ctx context.Context, farmer *models.Farmer) error {
	var err error
	for attempt := 0; attempt < r.opts.MaxIDAttempts; attempt++ {
		farmer.FarmerID = models.NewFarmerID()
		err = r.writer.Create(ctx, farmer)
		if !errors.Is(err, store.ErrDuplicate) {
			return err
		}
	}
	return fmt.Errorf("no unique farmer id after %d attempts: %w", r.opts.MaxIDAttempts, err)
}

func applySealed(f *models.Farmer, sealed *fieldcrypt.Sealed) {
	if sealed == nil {
		return
	}
	ciphertext, hash := sealed.Ciphertext, sealed.Hash
	f.NRCEncrypted = &ciphertext
	f.NRCHash = &hash
}

func persistFailure(out Outcome, err error) Outcome {
	out.Status = StatusError
	out.FarmerID = nil
	out.Errors = append(out.Errors, "failed to persist farmer: "+err.Error())
	return out
}
