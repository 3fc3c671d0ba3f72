package positions

import (
	"fmt"
	"math"
	"strings"

	"github.com/stakegraph/stakegraph/pkg/types"
)

// Shaping defaults. Call sites override TopK per operation.
const (
	DefaultTopK = 10
	// DefaultOppositionThreshold is the materiality bar above which the
	// digest annotates an entry with its opposition percentage.
	DefaultOppositionThreshold = 0.25
	// DefaultMaxEntryLength caps one digest line; overlong entries are
	// truncated with an ellipsis marker.
	DefaultMaxEntryLength = 200
)

// Options control response shaping.
type Options struct {
	// TopK is the number of entries rendered in the digest. Zero or
	// negative means DefaultTopK.
	TopK int
	// OppositionThreshold is the minimum opposition ratio that earns a
	// percentage suffix in the digest. Zero means the default.
	OppositionThreshold float64
	// MaxEntryLength caps a single digest line. Zero means the default.
	MaxEntryLength int
}

func (o Options) withDefaults() Options {
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.OppositionThreshold == 0 {
		o.OppositionThreshold = DefaultOppositionThreshold
	}
	if o.MaxEntryLength <= 0 {
		o.MaxEntryLength = DefaultMaxEntryLength
	}
	return o
}

// Summary reports aggregate counts over the full ranked set, never over
// the truncated digest view.
type Summary struct {
	Total             int `json:"total"`
	RelationshipCount int `json:"relationship_count"`
	SupportCount      int `json:"support_count"`
	OppositionCount   int `json:"opposition_count"`
}

// Result is the shaped output: the full ranked list, its untruncated
// summary, and a digest consistent with both.
type Result struct {
	Positions []*types.ProcessedPosition `json:"positions"`
	Summary   Summary                    `json:"summary"`
	Digest    string                     `json:"digest"`
}

// Payload returns the machine-consumable view of the result: the
// complete ranked list plus the untruncated summary.
func (r Result) Payload() map[string]any {
	return map[string]any{
		"positions": r.Positions,
		"summary":   r.Summary,
	}
}

// Shape builds both output views from one ranked list. The structured
// view carries every entry; only the digest is truncated to TopK. The
// two views always agree on ordering and totals.
func Shape(ranked []*types.ProcessedPosition, opts Options) Result {
	opts = opts.withDefaults()

	summary := summarize(ranked)
	return Result{
		Positions: ranked,
		Summary:   summary,
		Digest:    digest(ranked, summary, opts),
	}
}

// Process runs the full pipeline over raw records: normalize, classify,
// rank, shape. Skipped records (terms that are neither atom nor triple)
// are dropped without failing the batch.
func Process(raw []types.Position, viewerID string, opts Options) Result {
	normalized := Normalize(raw)

	entries := make([]*types.ProcessedPosition, 0, len(normalized))
	for _, p := range normalized {
		if e := Classify(p, viewerID); e != nil {
			entries = append(entries, e)
		}
	}

	Rank(entries)
	return Shape(entries, opts)
}

func summarize(ranked []*types.ProcessedPosition) Summary {
	s := Summary{Total: len(ranked)}
	for _, e := range ranked {
		if e.Type != types.RelationshipPositionKind {
			continue
		}
		s.RelationshipCount++
		if e.IsOpposing() {
			s.OppositionCount++
		} else {
			s.SupportCount++
		}
	}
	return s
}

func digest(ranked []*types.ProcessedPosition, summary Summary, opts Options) string {
	shown := len(ranked)
	if shown > opts.TopK {
		shown = opts.TopK
	}

	var b strings.Builder
	for i := 0; i < shown; i++ {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, digestLine(ranked[i], opts)))
	}

	if shown < summary.Total {
		b.WriteString(fmt.Sprintf("Showing top %d of %d positions (%d opposing).",
			shown, summary.Total, summary.OppositionCount))
	} else {
		b.WriteString(fmt.Sprintf("Showing %d positions (%d opposing).",
			summary.Total, summary.OppositionCount))
	}
	return b.String()
}

func digestLine(e *types.ProcessedPosition, opts Options) string {
	line := e.HumanReadable
	if e.IsOpposing() {
		line += " [OPPOSING]"
	}
	if m := e.OppositionMetrics; m != nil && m.OppositionRatio > opts.OppositionThreshold {
		line += fmt.Sprintf(" (%d%% opposed)", int(math.Round(m.OppositionRatio*100)))
	}
	return truncate(line, opts.MaxEntryLength)
}

// truncate caps a line at max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
