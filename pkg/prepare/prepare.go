// Package prepare loads and reconciles the two input files behind a
// content-addressed memo. Entries are keyed by the bytes of both inputs and
// the reconciliation parameters, so a changed file is never served stale.
package prepare

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/inetmap/internal/cache"
	"github.com/agentstation/inetmap/pkg/boundary"
	"github.com/agentstation/inetmap/pkg/constants"
	"github.com/agentstation/inetmap/pkg/errors"
	"github.com/agentstation/inetmap/pkg/logging"
	"github.com/agentstation/inetmap/pkg/reconciler"
	"github.com/agentstation/inetmap/pkg/usage"
)

// Request names the inputs of one preparation.
type Request struct {
	UsagePath    string
	BoundaryPath string
	// Threshold is the earliest eligible year. Zero selects the default;
	// negative values are rejected.
	Threshold int
	// ValueColumn overrides the usage percentage header when set.
	ValueColumn string
}

// Preparer runs load and reconcile, memoizing results by input content.
type Preparer struct {
	cache    *cache.Cache
	useCache bool
	logger   *zerolog.Logger
}

type options struct {
	ttl      time.Duration
	useCache bool
	logger   *zerolog.Logger
}

// Option configures a Preparer.
type Option func(*options)

// WithTTL sets how long prepared results stay cached.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.ttl = ttl
	}
}

// WithoutCache disables memoization; every call recomputes.
func WithoutCache() Option {
	return func(o *options) {
		o.useCache = false
	}
}

// WithLogger sets the logger used when the context carries none.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a Preparer.
func New(opts ...Option) *Preparer {
	o := &options{
		ttl:      constants.CacheTTL,
		useCache: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return &Preparer{
		cache:    cache.New(o.ttl, constants.CacheCleanupInterval),
		useCache: o.useCache,
		logger:   o.logger,
	}
}

// Prepare returns the reconciled result for req. Results for identical input
// bytes and parameters come from the cache when enabled.
func (p *Preparer) Prepare(ctx context.Context, req Request) (*reconciler.Result, error) {
	if req.Threshold == 0 {
		req.Threshold = constants.DefaultYearThreshold
	}
	if req.Threshold < 0 {
		return nil, errors.NewValidationError("threshold", req.Threshold, "must be a positive year")
	}
	ctx = logging.WithLogger(ctx, logging.FromContextOr(ctx, p.logger))
	logger := logging.FromContext(ctx)

	usageData, err := os.ReadFile(req.UsagePath)
	if err != nil {
		return nil, errors.WrapIO("read", req.UsagePath, err)
	}
	boundaryData, err := os.ReadFile(req.BoundaryPath)
	if err != nil {
		return nil, errors.WrapIO("read", req.BoundaryPath, err)
	}

	key := Key(usageData, boundaryData, req.Threshold, req.ValueColumn)
	if p.useCache {
		if v, ok := p.cache.Get(key); ok {
			logger.Debug().Str("key", key[:12]).Msg("Prepared data served from cache")
			return v.(*reconciler.Result), nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := usage.Read(bytes.NewReader(usageData),
		usage.WithSource(req.UsagePath), usage.WithValueColumn(req.ValueColumn))
	if err != nil {
		logging.FromContext(logging.WithDataset(ctx, "usage")).Debug().Err(err).Msg("Failed to parse dataset")
		return nil, err
	}
	boundaries, err := boundary.Decode(boundaryData)
	if err != nil {
		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.File = req.BoundaryPath
		}
		logging.FromContext(logging.WithDataset(ctx, "boundary")).Debug().Err(err).Msg("Failed to parse dataset")
		return nil, err
	}
	logger.Debug().
		Int("usage_rows", len(rows)).
		Int("boundaries", len(boundaries)).
		Msg("Loaded input datasets")

	result, err := reconciler.Reconcile(ctx, rows, boundaries,
		reconciler.WithThreshold(req.Threshold), reconciler.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	if p.useCache {
		p.cache.Set(key, result)
	}
	return result, nil
}

// Invalidate drops every cached result.
func (p *Preparer) Invalidate() {
	p.cache.Clear()
}

// Stats returns memo statistics.
func (p *Preparer) Stats() cache.Stats {
	return p.cache.GetStats()
}

// Key derives the memo key of a preparation.
func Key(usageData, boundaryData []byte, threshold int, valueColumn string) string {
	h := sha256.New()
	writeChunk := func(b []byte) {
		var n [8]byte
		binary.BigEndian.PutUint64(n[:], uint64(len(b)))
		h.Write(n[:])
		h.Write(b)
	}
	writeChunk(usageData)
	writeChunk(boundaryData)
	writeChunk([]byte(valueColumn))

	var t [8]byte
	binary.BigEndian.PutUint64(t[:], uint64(int64(threshold)))
	h.Write(t[:])
	return hex.EncodeToString(h.Sum(nil))
}
