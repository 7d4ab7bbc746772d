package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LogoBenz/authenticfurniture-backend/pkg/db"
	pkgerrors "github.com/LogoBenz/authenticfurniture-backend/pkg/errors"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/logger"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/metrics"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/redis"
	"github.com/google/uuid"
)

// snapshotCache is the subset of the redis client the adapter needs. A nil
// cache disables caching entirely.
type snapshotCache interface {
	GetSnapshot(ctx context.Context, entity string) ([]byte, error)
	SetSnapshot(ctx context.Context, entity string, payload []byte, ttl time.Duration) error
	InvalidateSnapshot(ctx context.Context, entity string) error
}

// Adapter routes reads and writes between a remote store and an embedded
// fallback dataset. Reads survive a missing or unreachable remote by serving
// the fallback; writes require the remote and fail otherwise.
type Adapter[T any] struct {
	entity   string
	remote   Store[T]
	fallback Store[T]
	cache    snapshotCache
	cacheTTL time.Duration
	logg     *logger.Logger
	metrics  *metrics.DataSourceMetrics
}

// Options carries the optional collaborators for an Adapter.
type Options struct {
	Cache    *redis.Client
	CacheTTL time.Duration
	Metrics  *metrics.DataSourceMetrics
}

// NewAdapter builds an adapter for the named entity. Remote may be nil when
// no remote DSN is configured; fallback is mandatory.
func NewAdapter[T any](entity string, remote, fallback Store[T], logg *logger.Logger, opts Options) (*Adapter[T], error) {
	if entity == "" {
		return nil, fmt.Errorf("entity name required")
	}
	if fallback == nil {
		return nil, fmt.Errorf("fallback store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	adapter := &Adapter[T]{
		entity:   entity,
		remote:   remote,
		fallback: fallback,
		cacheTTL: opts.CacheTTL,
		logg:     logg,
		metrics:  opts.Metrics,
	}
	if opts.Cache != nil {
		adapter.cache = opts.Cache
	}
	return adapter, nil
}

// Entity returns the entity name the adapter serves.
func (a *Adapter[T]) Entity() string {
	return a.entity
}

// RemoteConfigured reports whether a remote store is attached.
func (a *Adapter[T]) RemoteConfigured() bool {
	return a.remote != nil
}

// List returns every record. Remote results may be served from the snapshot
// cache; a remote failure falls back to the embedded dataset with a warning.
func (a *Adapter[T]) List(ctx context.Context) ([]T, error) {
	ctx = a.logg.WithEntity(ctx, a.entity)

	if a.remote == nil {
		a.metrics.IncFallback(a.entity)
		a.logg.Warn(ctx, "remote data source not configured, serving embedded dataset")
		return a.listFrom(ctx, a.fallback, "fallback")
	}

	if cached, ok := a.cachedList(ctx); ok {
		return cached, nil
	}

	records, err := a.listFrom(ctx, a.remote, "remote")
	if err != nil {
		a.metrics.IncFallback(a.entity)
		a.logg.Warn(a.logg.WithField(ctx, "error", err.Error()), "remote list failed, serving embedded dataset")
		return a.listFrom(ctx, a.fallback, "fallback")
	}

	a.storeSnapshot(ctx, records)
	return records, nil
}

// GetByID returns a single record, falling back like List. A record missing
// from the active store maps to NOT_FOUND.
func (a *Adapter[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	ctx = a.logg.WithEntity(ctx, a.entity)

	store := a.remote
	if store == nil {
		a.metrics.IncFallback(a.entity)
		a.logg.Warn(ctx, "remote data source not configured, serving embedded dataset")
		store = a.fallback
	}

	record, err := store.GetByID(ctx, id)
	if err == nil {
		return record, nil
	}
	if db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("%s %s not found", a.entity, id))
	}
	if store == a.remote {
		a.metrics.IncFallback(a.entity)
		a.logg.Warn(a.logg.WithField(ctx, "error", err.Error()), "remote read failed, serving embedded dataset")
		record, err = a.fallback.GetByID(ctx, id)
		if err == nil {
			return record, nil
		}
		if db.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("%s %s not found", a.entity, id))
		}
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("reading %s %s", a.entity, id))
}

// Create inserts a record on the remote store. Writes never touch the
// embedded dataset.
func (a *Adapter[T]) Create(ctx context.Context, record *T) (*T, error) {
	ctx = a.logg.WithEntity(ctx, a.entity)
	if err := a.requireRemote(); err != nil {
		return nil, err
	}
	created, err := a.remote.Create(ctx, record)
	if err != nil {
		return nil, a.writeError(ctx, "create", err)
	}
	a.InvalidateSnapshot(ctx)
	return created, nil
}

// Update persists changes to an existing record on the remote store.
func (a *Adapter[T]) Update(ctx context.Context, record *T) (*T, error) {
	ctx = a.logg.WithEntity(ctx, a.entity)
	if err := a.requireRemote(); err != nil {
		return nil, err
	}
	updated, err := a.remote.Update(ctx, record)
	if err != nil {
		return nil, a.writeError(ctx, "update", err)
	}
	a.InvalidateSnapshot(ctx)
	return updated, nil
}

// Delete removes a record on the remote store.
func (a *Adapter[T]) Delete(ctx context.Context, id uuid.UUID) error {
	ctx = a.logg.WithEntity(ctx, a.entity)
	if err := a.requireRemote(); err != nil {
		return err
	}
	if err := a.remote.Delete(ctx, id); err != nil {
		return a.writeError(ctx, "delete", err)
	}
	a.InvalidateSnapshot(ctx)
	return nil
}

func (a *Adapter[T]) requireRemote() error {
	if a.remote != nil {
		return nil
	}
	a.metrics.IncWriteError(a.entity, string(pkgerrors.CodeNotConfigured))
	return pkgerrors.New(pkgerrors.CodeNotConfigured, fmt.Sprintf("no remote data source configured for %s", a.entity))
}

// writeError maps raw store failures onto the error taxonomy. Constraint
// violations are permanent rejections; everything else is transient.
func (a *Adapter[T]) writeError(ctx context.Context, op string, err error) error {
	code := pkgerrors.CodeDependency
	switch {
	case db.IsNotFound(err):
		code = pkgerrors.CodeNotFound
	case db.IsConstraintViolation(err):
		code = pkgerrors.CodeRemoteRejected
	}
	a.metrics.IncWriteError(a.entity, string(code))
	a.logg.Error(ctx, fmt.Sprintf("%s %s failed", a.entity, op), err)
	return pkgerrors.Wrap(code, err, fmt.Sprintf("%s %s", op, a.entity))
}

func (a *Adapter[T]) listFrom(ctx context.Context, store Store[T], source string) ([]T, error) {
	start := time.Now()
	records, err := store.List(ctx)
	a.metrics.ObserveRead(a.entity, source, time.Since(start))
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *Adapter[T]) cachedList(ctx context.Context) ([]T, bool) {
	if a.cache == nil {
		return nil, false
	}
	payload, err := a.cache.GetSnapshot(ctx, a.entity)
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			a.logg.Warn(ctx, "snapshot cache read failed")
		}
		a.metrics.IncCacheMiss(a.entity)
		return nil, false
	}
	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		a.logg.Warn(ctx, "snapshot cache payload corrupt, dropping")
		_ = a.cache.InvalidateSnapshot(ctx, a.entity)
		a.metrics.IncCacheMiss(a.entity)
		return nil, false
	}
	a.metrics.IncCacheHit(a.entity)
	return records, true
}

func (a *Adapter[T]) storeSnapshot(ctx context.Context, records []T) {
	if a.cache == nil {
		return
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := a.cache.SetSnapshot(ctx, a.entity, payload, a.cacheTTL); err != nil {
		a.logg.Warn(ctx, "snapshot cache write failed")
	}
}

// InvalidateSnapshot drops the cached list snapshot. Callers that write to
// the remote store outside the adapter, like the taxonomy move or the stock
// upsert, must invalidate before reloading or List keeps serving the
// pre-write snapshot until the TTL expires.
func (a *Adapter[T]) InvalidateSnapshot(ctx context.Context) {
	if a.cache == nil {
		return
	}
	if err := a.cache.InvalidateSnapshot(ctx, a.entity); err != nil {
		a.logg.Warn(ctx, "snapshot cache invalidation failed")
	}
}
