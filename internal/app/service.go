// Package service wires the pitch domain to its stores and collaborators and
// implements the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/okian/pitchgate/internal/adapters/crm"
	"github.com/okian/pitchgate/internal/adapters/llm"
	"github.com/okian/pitchgate/internal/adapters/mq/queue"
	"github.com/okian/pitchgate/internal/adapters/mq/worker"
	"github.com/okian/pitchgate/internal/adapters/notify"
	"github.com/okian/pitchgate/internal/adapters/repository"
	"github.com/okian/pitchgate/internal/config"
	"github.com/okian/pitchgate/internal/domain/dedupe"
	"github.com/okian/pitchgate/internal/domain/gate"
	"github.com/okian/pitchgate/internal/domain/generation"
	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/internal/domain/ratelimit"
	"github.com/okian/pitchgate/internal/domain/verification"
	"github.com/okian/pitchgate/pkg/logger"
	"github.com/okian/pitchgate/pkg/metrics"
)

// CRM sync outcomes recorded in metrics.
const (
	syncOK       = "ok"
	syncFailed   = "failed"
	syncSkipped  = "skipped"
	syncRejected = "rejected"
)

// ContactUpserter pushes a contact to the CRM.
type ContactUpserter interface {
	Enabled() bool
	Upsert(ctx context.Context, c crm.Contact) (string, error)
}

// Service implements the API dependencies for pitch scoring, generation and
// verification.
type Service struct {
	mu sync.RWMutex

	cfg *config.Config

	gate      gate.Generation
	limiter   *ratelimit.Limiter
	verifier  *verification.Service
	generator generation.Generator
	crm       ContactUpserter
	sender    verification.Sender
	redis     redis.UniversalClient
	ownsRedis bool
	codes     verification.Store
	windows   ratelimit.WindowStore
	deduper   dedupe.Deduper
	syncQueue queue.Queue
	pool      *worker.Pool

	started   bool
	startedAt time.Time
	stopCh    chan struct{}
	sweepDone chan struct{}

	logger logger.Logger
}

// New constructs a Service from cfg. Collaborators not supplied through
// options are built from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	s := &Service{
		cfg:  cfg,
		gate: gate.NewGeneration(cfg.MinScore),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	if err := s.buildStores(); err != nil {
		return nil, err
	}
	if s.sender == nil {
		s.sender = notify.NewLogSender(s.logger.Named("notify"))
	}
	s.verifier = verification.NewService(s.codes,
		verification.WithTTL(cfg.CodeTTL),
		verification.WithSender(s.sender))
	s.limiter = ratelimit.New(s.windows,
		ratelimit.WithLimit(cfg.RateLimit),
		ratelimit.WithWindow(cfg.RateLimitWindow))

	if s.generator == nil {
		g, err := llm.NewFromConfig(cfg)
		switch {
		case errors.Is(err, llm.ErrMissingAPIKey):
			s.logger.Warn(context.Background(), "no api key for ai provider; generation will fail",
				logger.String("provider", cfg.AIProvider))
			s.generator = unavailableGenerator{provider: cfg.AIProvider}
		case err != nil:
			return nil, fmt.Errorf("build generator: %w", err)
		default:
			s.generator = g
		}
	}
	if s.crm == nil {
		s.crm = crm.New(cfg.CRMAPIKey,
			crm.WithBaseURL(cfg.CRMBaseURL),
			crm.WithLocationID(cfg.CRMLocationID),
			crm.WithTimeout(cfg.CRMTimeout),
			crm.WithMaxRetries(cfg.CRMMaxRetries),
			crm.WithLogger(s.logger.Named("crm")))
	}

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(cfg.SyncDedupeSize))
	s.buildSync()
	return s, nil
}

// buildSync creates the contact sync queue and its worker pool. A pool cannot
// be restarted once its queue is closed, so Start calls this again after Stop.
func (s *Service) buildSync() {
	s.syncQueue = queue.NewInMemoryQueue(queue.WithCapacity(s.cfg.SyncQueueSize))
	s.pool = worker.NewPool(s.cfg.SyncWorkers, s.syncQueue, worker.HandlerFunc(s.syncContact))
}

func (s *Service) buildStores() error {
	switch s.cfg.StoreBackend {
	case config.BackendRedis:
		if s.redis == nil {
			s.redis = repository.NewRedisClient(s.cfg.RedisAddr, s.cfg.RedisPassword, s.cfg.RedisDB)
			s.ownsRedis = true
		}
		s.codes = repository.NewRedisCodeStore(s.redis)
		s.windows = repository.NewRedisWindowStore(s.redis)
	case config.BackendMemory, "":
		s.codes = repository.NewMemoryCodeStore()
		s.windows = repository.NewMemoryWindowStore()
	default:
		return fmt.Errorf("%w: store backend %q", config.ErrInvalidConfig, s.cfg.StoreBackend)
	}
	return nil
}

// Start launches the sync workers and the sweeper. A Redis backend is pinged
// first.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
	}

	if s.syncQueue.IsClosed() {
		s.buildSync()
	}
	s.pool.Start(ctx)
	s.stopCh = make(chan struct{})
	s.sweepDone = make(chan struct{})
	go s.sweepLoop(ctx, s.stopCh, s.sweepDone)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "pitch service started",
		logger.String("store", s.cfg.StoreBackend),
		logger.String("provider", s.generator.Provider()),
		logger.Int("minScore", s.gate.MinScore),
		logger.Int("syncWorkers", s.pool.Size()),
		logger.Bool("crmEnabled", s.crm.Enabled()))
	return nil
}

// Stop drains the sync queue and stops background work. A stopped service
// can be started again.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	<-s.sweepDone

	err := s.pool.Shutdown(ctx)
	s.started = false
	s.logger.Info(ctx, "pitch service stopped")
	return err
}

// Close stops the service and releases the Redis client it created. A client
// supplied through WithRedisClient is left to its owner. A closed service
// cannot be started again.
func (s *Service) Close(ctx context.Context) error {
	err := s.Stop(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ownsRedis && s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil {
			s.logger.Error(ctx, "error closing redis", logger.Error(cerr))
		}
		s.ownsRedis = false
	}
	return err
}

func (s *Service) sweepLoop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	interval := s.cfg.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep drops expired codes and elapsed rate-limit windows and refreshes
// system gauges.
func (s *Service) Sweep(ctx context.Context) {
	codes, err := s.verifier.Sweep(ctx)
	if err != nil {
		s.logger.Warn(ctx, "code sweep failed", logger.Error(err))
	}
	windows, err := s.limiter.Sweep(ctx)
	if err != nil {
		s.logger.Warn(ctx, "window sweep failed", logger.Error(err))
	}
	if codes > 0 || windows > 0 {
		s.logger.Debug(ctx, "swept expired state",
			logger.Int("codes", codes),
			logger.Int("windows", windows))
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	metrics.UpdateSystemMemoryUsage(mem.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if mem.NumGC > 0 {
		metrics.RecordSystemGCPauseTime(float64(mem.PauseNs[(mem.NumGC+255)%256]) / float64(time.Millisecond))
	}
}

// MinScore returns the generation threshold.
func (s *Service) MinScore() int { return s.gate.MinScore }

// RateLimit returns the generation requests allowed per window.
func (s *Service) RateLimit() int { return s.limiter.Limit() }

// Provider names the generation upstream.
func (s *Service) Provider() string { return s.generator.Provider() }

// Development reports whether diagnostic response fields are enabled.
func (s *Service) Development() bool { return s.cfg.IsDevelopment() }

// AllowGeneration consumes one generation slot for clientKey.
func (s *Service) AllowGeneration(ctx context.Context, clientKey string) (ratelimit.Decision, error) {
	d, err := s.limiter.Allow(ctx, clientKey)
	if err == nil && !d.Allowed {
		metrics.RecordRateLimited("generate")
	}
	return d, err
}

// Evaluate runs the generation gate over form.
func (s *Service) Evaluate(form model.PitchForm) (model.GenerationRequest, error) {
	req, err := s.gate.Evaluate(form)
	var rej *gate.Rejection
	if errors.As(err, &rej) {
		metrics.RecordGateRejection(string(rej.Reason))
	}
	return req, err
}

// Generate calls the generation collaborator and records its outcome.
func (s *Service) Generate(ctx context.Context, req model.GenerationRequest) (model.Pitches, error) {
	start := time.Now()
	p, err := s.generator.Generate(ctx, req)
	metrics.RecordGeneration(generation.Outcome(err), float64(time.Since(start).Milliseconds()))
	return p, err
}

// RequestCode issues a verification code for email.
func (s *Service) RequestCode(ctx context.Context, email string) (verification.Code, error) {
	c, err := s.verifier.RequestCode(ctx, email)
	if err == nil {
		metrics.RecordCodeIssued()
	}
	return c, err
}

// VerifyCode checks a code and records the outcome.
func (s *Service) VerifyCode(ctx context.Context, email, code string) error {
	err := s.verifier.Verify(ctx, email, code)
	metrics.RecordVerification(verificationOutcome(err))
	return err
}

func verificationOutcome(err error) string {
	switch {
	case err == nil:
		return "verified"
	case errors.Is(err, verification.ErrNotFound):
		return "not_found"
	case errors.Is(err, verification.ErrExpired):
		return "expired"
	case errors.Is(err, verification.ErrMismatch):
		return "mismatch"
	default:
		return "error"
	}
}

// EnqueueContactSync schedules a CRM upsert for a verified email. Identical
// submissions are synced once. It never blocks on the CRM.
func (s *Service) EnqueueContactSync(ctx context.Context, email string, form *model.PitchForm) (string, error) {
	if !s.crm.Enabled() {
		metrics.RecordCRMSync(syncSkipped)
		return "", crm.ErrNotConfigured
	}
	key, err := verification.NormalizeEmail(email)
	if err != nil {
		return "", err
	}
	job := model.ContactSync{
		JobID:      uuid.NewString(),
		Email:      key,
		Form:       form,
		VerifiedAt: time.Now().UTC(),
	}
	fp := dedupe.Fingerprint(job)
	if s.deduper.SeenAndRecord(ctx, fp) {
		metrics.RecordCRMSyncDuplicate()
		return "", nil
	}
	s.mu.RLock()
	q := s.syncQueue
	s.mu.RUnlock()
	if err := q.Enqueue(ctx, job); err != nil {
		s.deduper.Unrecord(ctx, fp)
		return "", fmt.Errorf("enqueue contact sync: %w", err)
	}
	return job.JobID, nil
}

// syncContact is the worker handler for contact sync jobs.
func (s *Service) syncContact(ctx context.Context, job model.ContactSync) error {
	id, err := s.crm.Upsert(ctx, crm.BuildContact(job.Email, job.Form))
	switch {
	case err == nil:
		metrics.RecordCRMSync(syncOK)
		s.logger.Info(ctx, "contact synced",
			logger.String("email", job.Email),
			logger.String("contact_id", id))
		return nil
	case errors.Is(err, crm.ErrRejected):
		metrics.RecordCRMSync(syncRejected)
	default:
		metrics.RecordCRMSync(syncFailed)
		// Allow a later verification of the same submission to try again.
		s.deduper.Unrecord(ctx, dedupe.Fingerprint(job))
	}
	return err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"storeBackend":   s.cfg.StoreBackend,
		"provider":       s.generator.Provider(),
		"minScore":       s.gate.MinScore,
		"rateLimit":      s.limiter.Limit(),
		"crmEnabled":     s.crm.Enabled(),
		"syncWorkers":    s.pool.Size(),
		"syncQueueSize":  s.cfg.SyncQueueSize,
		"syncQueueLen":   s.syncQueue.Len(),
		"syncDedupeSize": s.deduper.Size(),
		"syncProcessed":  s.pool.Processed(),
		"syncFailed":     s.pool.Failed(),
	}
	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}
	if m, ok := s.codes.(interface{ Len() int }); ok {
		stats["liveCodes"] = m.Len()
	}
	if m, ok := s.windows.(interface{ Len() int }); ok {
		stats["rateLimitWindows"] = m.Len()
	}
	return stats
}

// unavailableGenerator stands in when the provider has no credentials.
type unavailableGenerator struct {
	provider string
}

func (u unavailableGenerator) Provider() string { return u.provider }

func (u unavailableGenerator) Generate(context.Context, model.GenerationRequest) (model.Pitches, error) {
	return model.Pitches{}, fmt.Errorf("%w: %s api key not configured", generation.ErrUpstreamAuth, u.provider)
}
