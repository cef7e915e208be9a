package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowcopy/flowcopy/pkg/cache"
	flowerr "github.com/flowcopy/flowcopy/pkg/errors"
	"github.com/flowcopy/flowcopy/pkg/flow"
	"github.com/flowcopy/flowcopy/pkg/observability"
	"github.com/flowcopy/flowcopy/pkg/reconcile"
	"github.com/flowcopy/flowcopy/pkg/sequence"
	"github.com/flowcopy/flowcopy/pkg/tabular"
)

// Runner executes export and import flows with caching and logging. The zero
// value is not usable; construct with NewRunner.
type Runner struct {
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
	ttl    time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithCache sets the cache backend.
func WithCache(c cache.Cache) Option {
	return func(r *Runner) { r.cache = c }
}

// WithKeyer sets the cache key strategy.
func WithKeyer(k cache.Keyer) Option {
	return func(r *Runner) { r.keyer = k }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithTTL overrides the cache TTL for derived results.
func WithTTL(ttl time.Duration) Option {
	return func(r *Runner) { r.ttl = ttl }
}

// NewRunner creates a Runner. Missing collaborators fall back to a no-op
// cache, the default keyer, and the default logger.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{ttl: DefaultCacheTTL}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = cache.NewNullCache()
	}
	if r.keyer == nil {
		r.keyer = cache.NewDefaultKeyer()
	}
	r.logger = logger(r.logger)
	return r
}

// =============================================================================
// Sequence
// =============================================================================

// Sequence derives the full sequence bundle for a project: topological order,
// parallel groups, final sequence numbers, display order, and identity token.
// Results are cached by graph content hash.
func (r *Runner) Sequence(ctx context.Context, p flow.Project) (SequenceInfo, error) {
	start := time.Now()
	observability.Pipeline().OnSequenceStart(ctx, p.ID, len(p.Nodes))

	graphHash := cache.GraphHash(p.Nodes, p.Edges)
	key := r.keyer.SequenceKey(graphHash)

	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		var info SequenceInfo
		if err := json.Unmarshal(data, &info); err == nil {
			observability.Cache().OnCacheHit(ctx, "sequence")
			observability.Pipeline().OnSequenceComplete(ctx, p.ID, info.HasCycle, time.Since(start))
			r.logger.Debug("sequence cache hit", "project", p.ID, "hash", graphHash[:12])
			return info, nil
		}
		// Corrupt entry, recompute below.
		_ = r.cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, "sequence")

	info := computeSequence(p)
	info.GraphHash = graphHash

	if data, err := json.Marshal(info); err == nil {
		if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
			r.logger.Warn("sequence cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "sequence", len(data))
		}
	}
	observability.Pipeline().OnSequenceComplete(ctx, p.ID, info.HasCycle, time.Since(start))
	return info, nil
}

// computeSequence runs the ordering engines directly, without caching.
func computeSequence(p flow.Project) SequenceInfo {
	ord := sequence.Order(p.Nodes, p.Edges)
	grp := sequence.GroupParallel(p.Nodes, p.Edges)
	final := sequence.Project(ord, grp)

	return SequenceInfo{
		OrderedIDs:    ord.OrderedIDs,
		Sequence:      ord.SequenceByNode,
		FinalSequence: final,
		DisplayOrder:  sequence.DisplayOrder(p.Nodes, final),
		Groups:        grp.Groups,
		GroupByNode:   grp.GroupByNode,
		Token:         sequence.Identity(ord.OrderedIDs, p.Nodes, p.Edges),
		HasCycle:      ord.HasCycle,
	}
}

// =============================================================================
// Export
// =============================================================================

// Export serializes a project into an interchange document. The serialized
// document is cached by content hash unless opts.Refresh is set; the timestamp
// of a cached document is the timestamp of its original export.
func (r *Runner) Export(ctx context.Context, p flow.Project, opts ExportOptions) (ExportResult, error) {
	format := opts.Format
	if format == "" {
		format = tabular.FormatCSV
	}
	if format != tabular.FormatCSV && format != tabular.FormatXML {
		return ExportResult{}, flowerr.New(flowerr.ErrCodeUnrecognizedFormat,
			"unsupported export format %q", string(opts.Format))
	}

	exportedAt := opts.ExportedAt
	if exportedAt.IsZero() {
		exportedAt = time.Now()
	}

	start := time.Now()
	observability.Pipeline().OnExportStart(ctx, p.ID, string(format))

	graphHash := cache.GraphHash(p.Nodes, p.Edges)
	optionsJSON, _ := json.Marshal(p.Options)
	docHash := contentHash(graphHash, p.ID, p.Name, string(optionsJSON))
	key := r.keyer.RowsKey(docHash, string(format))

	result := ExportResult{
		Format:    format,
		GraphHash: graphHash,
		Filename:  tabular.ExportFilename(p.ID, exportedAt, format),
		Stats: ExportStats{
			NodeCount: len(p.Nodes),
			EdgeCount: len(p.Edges),
		},
	}

	if !opts.Refresh {
		if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
			var env exportCacheEnvelope
			if err := json.Unmarshal(data, &env); err == nil {
				r.logger.Debug("export cache hit", "project", p.ID, "format", format)
				result.Document = env.Document
				result.Token = env.Token
				result.HasCycle = env.HasCycle
				result.RowCount = env.RowCount
				result.CacheHit = true
				observability.Cache().OnCacheHit(ctx, "rows")
				observability.Pipeline().OnExportComplete(ctx, p.ID, string(format), result.RowCount, time.Since(start), nil)
				return result, nil
			}
			_ = r.cache.Delete(ctx, key)
		}
		observability.Cache().OnCacheMiss(ctx, "rows")
	}

	seqStart := time.Now()
	rows := tabular.ToFlatRows(tabular.ExportContext{
		SessionID:  opts.SessionID,
		AccountID:  opts.AccountID,
		Project:    p,
		ExportedAt: exportedAt,
	})
	result.Stats.SequenceTime = time.Since(seqStart)

	serStart := time.Now()
	var doc string
	switch format {
	case tabular.FormatXML:
		doc = tabular.SerializeXML(rows)
	default:
		doc = tabular.SerializeCSV(rows)
	}
	result.Stats.SerializeTime = time.Since(serStart)

	result.Document = doc
	result.RowCount = len(rows)
	if len(rows) > 0 {
		result.Token = rows[0].FlowToken
		result.HasCycle = rows[0].HasCycle == "true"
	}

	env := exportCacheEnvelope{
		Document: result.Document,
		Token:    result.Token,
		HasCycle: result.HasCycle,
		RowCount: result.RowCount,
	}
	if data, err := json.Marshal(env); err == nil {
		if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
			r.logger.Warn("export cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "rows", len(data))
		}
	}

	observability.Pipeline().OnExportComplete(ctx, p.ID, string(format), result.RowCount, time.Since(start), nil)
	r.logger.Info("exported project",
		"project", p.ID,
		"format", format,
		"rows", result.RowCount,
		"token", result.Token,
		"cycle", result.HasCycle)
	return result, nil
}

// =============================================================================
// Import
// =============================================================================

// Import parses an interchange document and reconciles it against the active
// project. Failures carry a code from the import taxonomy:
//
//	UNRECOGNIZED_FORMAT  the document is neither CSV nor XML
//	MALFORMED_DOCUMENT   the XML does not parse
//	EMPTY_IMPORT         the document holds no usable rows
//	NO_MATCHING_ROWS     no row belongs to the active project
func (r *Runner) Import(ctx context.Context, filename, content, activeProjectID string) (ImportResult, error) {
	start := time.Now()
	observability.Pipeline().OnImportStart(ctx, filename)

	format := tabular.DetectFormat(filename, content)
	if format == tabular.FormatUnknown {
		err := flowerr.New(flowerr.ErrCodeUnrecognizedFormat,
			"cannot determine the format of %q; expected a CSV or XML export", filename)
		observability.Pipeline().OnImportComplete(ctx, filename, 0, time.Since(start), err)
		return ImportResult{}, err
	}

	parseStart := time.Now()
	var rows []tabular.Row
	switch format {
	case tabular.FormatXML:
		parsed, err := tabular.ParseXML(content)
		if err != nil {
			werr := flowerr.Wrap(flowerr.ErrCodeMalformedDocument, err,
				"the XML document could not be parsed")
			observability.Pipeline().OnImportComplete(ctx, filename, 0, time.Since(start), werr)
			return ImportResult{}, werr
		}
		rows = parsed
	default:
		rows = tabular.ParseCSV(content)
	}
	parseTime := time.Since(parseStart)

	recStart := time.Now()
	rec, err := reconcile.Reconcile(rows, activeProjectID)
	if err != nil {
		observability.Pipeline().OnImportComplete(ctx, filename, len(rows), time.Since(start), err)
		return ImportResult{}, err
	}

	observability.Pipeline().OnImportComplete(ctx, filename, len(rows), time.Since(start), nil)
	r.logger.Info("imported document",
		"file", filename,
		"format", format,
		"rows", len(rows),
		"nodes", len(rec.Nodes),
		"edges", len(rec.Edges))

	return ImportResult{
		Format:     format,
		RowCount:   len(rows),
		Reconciled: rec,
		Stats: ImportStats{
			ParseTime:     parseTime,
			ReconcileTime: time.Since(recStart),
		},
	}, nil
}
