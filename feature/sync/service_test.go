package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"farmer-registry/core/clock"
	"farmer-registry/core/database"
	"farmer-registry/core/fieldcrypt"
	"farmer-registry/core/jobs"
	"farmer-registry/core/metrics"
	"farmer-registry/core/storage/mocks"
	"farmer-registry/core/utils"
	"farmer-registry/feature/farmer/models"
	"farmer-registry/feature/farmer/store"
	"farmer-registry/feature/farmer/validate"
	"farmer-registry/feature/sync/reconcile"

	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

type engineFunc func(ctx context.Context, batch []models.IncomingRecord, actor string) ([]Outcome, error)

func (f engineFunc) Reconcile(ctx context.Context, batch []models.IncomingRecord, actor string) ([]Outcome, error) {
	return f(ctx, batch, actor)
}

func newQueue(t *testing.T, opts jobs.Options) *jobs.Queue[Outcome] {
	t.Helper()
	q := jobs.NewQueue[Outcome](jobs.NewMemoryStore[Outcome](0), opts, zap.NewNop())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = q.Close(ctx)
	})
	return q
}

func newEngine(t *testing.T) (*reconcile.Reconciler, *store.GormStore) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	st := store.New(db)
	require.NoError(t, st.Migrate(context.Background()))

	enc, err := fieldcrypt.New("test-secret")
	require.NoError(t, err)

	clk := clock.Fixed(testNow)
	v := validate.New(validate.ZambiaRules(), clk)
	return reconcile.New(v, enc, st, clk, metrics.Nop(), zap.NewNop(), reconcile.Options{}), st
}

func newTestService(t *testing.T, engine Engine, archive *Archive, opts jobs.Options) (*Service, *metrics.Metrics) {
	t.Helper()
	m := metrics.Nop()
	return NewService(newQueue(t, opts), engine, archive, m, zap.NewNop()), m
}

func waitTerminal(t *testing.T, s *Service, id string) Job {
	t.Helper()
	var job Job
	require.Eventually(t, func() bool {
		var err error
		job, err = s.Status(context.Background(), id)
		return err == nil && job.State.Terminal()
	}, 2*time.Second, 5*time.Millisecond)
	return job
}

func scenarioBatch() []models.IncomingRecord {
	return []models.IncomingRecord{
		{
			TempID: utils.Ptr("T1"),
			PersonalInfo: models.PersonalInfo{
				FirstName:    "Mwila",
				LastName:     "Banda",
				PhonePrimary: "+260971234567",
				NRC:          utils.Ptr("123456/78/9"),
			},
			Address: models.Address{Province: "LSK", District: "Chongwe"},
		},
		{PersonalInfo: models.PersonalInfo{PhonePrimary: "0000000000"}},
	}
}

func TestService_SubmitScenario(t *testing.T) {
	engine, _ := newEngine(t)
	svc, m := newTestService(t, engine, nil, jobs.Options{Workers: 1, QueueSize: 4})

	id, err := svc.Submit(context.Background(), scenarioBatch(), "agent@example.zm")
	require.NoError(t, err)

	job := waitTerminal(t, svc, id)
	require.Equal(t, jobs.StateDone, job.State)
	require.Len(t, job.Results, 2)

	assert.Equal(t, "T1", *job.Results[0].TempID)
	assert.Equal(t, reconcile.StatusCreated, job.Results[0].Status)
	assert.Regexp(t, `^ZM[0-9A-F]{8}$`, *job.Results[0].FarmerID)

	assert.Nil(t, job.Results[1].TempID)
	assert.Equal(t, reconcile.StatusError, job.Results[1].Status)
	assert.Equal(t, []string{"Phone must start with country code +260"}, job.Results[1].Errors)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobsSubmitted))
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(m.JobsFinished.WithLabelValues("done")) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestService_SubmitCopiesBatch(t *testing.T) {
	seen := make(chan string, 1)
	release := make(chan struct{})
	engine := engineFunc(func(ctx context.Context, batch []models.IncomingRecord, actor string) ([]Outcome, error) {
		<-release
		seen <- batch[0].PersonalInfo.PhonePrimary
		return nil, nil
	})
	svc, _ := newTestService(t, engine, nil, jobs.Options{Workers: 1, QueueSize: 1})

	batch := []models.IncomingRecord{{PersonalInfo: models.PersonalInfo{PhonePrimary: "+260971234567"}}}
	_, err := svc.Submit(context.Background(), batch, "agent")
	require.NoError(t, err)

	batch[0] = models.IncomingRecord{}
	close(release)
	assert.Equal(t, "+260971234567", <-seen)
}

func TestService_FailedJob(t *testing.T) {
	engine := engineFunc(func(context.Context, []models.IncomingRecord, string) ([]Outcome, error) {
		return nil, &reconcile.ResolutionError{Signal: reconcile.SignalPhone, Err: assert.AnError}
	})
	svc, m := newTestService(t, engine, nil, jobs.Options{Workers: 1, QueueSize: 1})

	id, err := svc.Submit(context.Background(), scenarioBatch(), "agent")
	require.NoError(t, err)

	job := waitTerminal(t, svc, id)
	assert.Equal(t, jobs.StateFailed, job.State)
	assert.Nil(t, job.Results)
	assert.Contains(t, job.Error, "identity resolution by phone_primary failed")
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(m.JobsFinished.WithLabelValues("failed")) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestService_StatusUnknown(t *testing.T) {
	svc, _ := newTestService(t, engineFunc(nil), nil, jobs.Options{Workers: 1})
	_, err := svc.Status(context.Background(), "missing")
	assert.ErrorIs(t, err, jobs.ErrNotFound)
}

func TestService_StatusFallsBackToArchive(t *testing.T) {
	client := new(mocks.Client)
	archive := NewArchive(client, "bucket", "reports", zap.NewNop())
	svc, _ := newTestService(t, engineFunc(nil), archive, jobs.Options{Workers: 1})

	archived := Job{ID: "old", State: jobs.StateDone, Results: []Outcome{{Status: reconcile.StatusCreated, Errors: []string{}}}}
	data, err := json.Marshal(archived)
	require.NoError(t, err)

	client.On("GetObject", mock.Anything, "bucket", "reports/old.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(data)), nil)
	client.On("GetObject", mock.Anything, "bucket", "reports/gone.json", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

	job, err := svc.Status(context.Background(), "old")
	require.NoError(t, err)
	assert.Equal(t, jobs.StateDone, job.State)
	assert.Len(t, job.Results, 1)

	_, err = svc.Status(context.Background(), "gone")
	assert.ErrorIs(t, err, jobs.ErrNotFound)
}

func TestService_ArchivesFinishedJobs(t *testing.T) {
	client := new(mocks.Client)
	archive := NewArchive(client, "bucket", "reports", zap.NewNop())
	engine, _ := newEngine(t)
	svc, _ := newTestService(t, engine, archive, jobs.Options{Workers: 1, QueueSize: 1})

	stored := make(chan string, 1)
	client.On("PutObject", mock.Anything, "bucket", mock.AnythingOfType("string"), mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored <- args.String(2) }).
		Return(minio.UploadInfo{}, nil)

	id, err := svc.Submit(context.Background(), scenarioBatch(), "agent")
	require.NoError(t, err)

	select {
	case key := <-stored:
		assert.Equal(t, "reports/"+id+".json", key)
	case <-time.After(2 * time.Second):
		t.Fatal("job report was not archived")
	}
}

func TestService_Run(t *testing.T) {
	engine, st := newEngine(t)
	svc, _ := newTestService(t, engine, nil, jobs.Options{Workers: 1})

	out, err := svc.Run(context.Background(), scenarioBatch(), "cli")
	require.NoError(t, err)
	require.Len(t, out, 2)

	f, err := st.FindByTempID(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, "cli", f.CreatedBy)
}
