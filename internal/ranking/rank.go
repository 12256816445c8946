package ranking

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-ranker/internal/extraction"
	"github.com/jonathan/cv-ranker/internal/types"
)

// Batch is the scored result of a document collection, kept in input order.
// It is read-only once built; rankings and tallies are recomputed on each call.
type Batch struct {
	docs       []types.ScoredDocument
	skillOrder []string
}

// NewBatch wraps already scored documents. skillOrder is the configured skill
// order used to break frequency ties; it may be nil.
func NewBatch(docs []types.ScoredDocument, skillOrder []string) *Batch {
	copied := make([]types.ScoredDocument, len(docs))
	copy(copied, docs)
	return &Batch{docs: copied, skillOrder: skillOrder}
}

// ProcessAll extracts and scores every document, spreading the work over at
// most workers goroutines (one per CPU when workers <= 0). Results come back in
// input order. The only error is cancellation of ctx.
func ProcessAll(ctx context.Context, docs []types.Document, extractor *extraction.Extractor, weights Weights, workers int) (*Batch, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	scored := make([]types.ScoredDocument, len(docs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range docs {
		if err := gCtx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result := extractor.Extract(docs[i])
			scored[i] = ScoreDocument(docs[i].Name, result, weights)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch processing interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch processing interrupted: %w", err)
	}

	return &Batch{docs: scored, skillOrder: extractor.Skills().Terms()}, nil
}

// Len returns the number of documents in the batch.
func (b *Batch) Len() int {
	return len(b.docs)
}

// Documents returns the scored documents in input order.
func (b *Batch) Documents() []types.ScoredDocument {
	out := make([]types.ScoredDocument, len(b.docs))
	copy(out, b.docs)
	return out
}

// RankedDescending returns the documents sorted by score, highest first.
// Equal scores keep their input order.
func (b *Batch) RankedDescending() []types.ScoredDocument {
	ranked := b.Documents()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// SkillFrequency counts, for each skill, how many documents contain it.
func (b *Batch) SkillFrequency() map[string]int {
	freq := make(map[string]int)
	for _, doc := range b.docs {
		for _, skill := range doc.Result.Skills {
			freq[skill]++
		}
	}
	return freq
}

// SkillFrequencyTable returns SkillFrequency as rows sorted by count descending.
// Ties follow the configured skill order, then name.
func (b *Batch) SkillFrequencyTable() []types.SkillCount {
	freq := b.SkillFrequency()

	position := make(map[string]int, len(b.skillOrder))
	for i, skill := range b.skillOrder {
		position[skill] = i
	}

	rows := make([]types.SkillCount, 0, len(freq))
	for skill, count := range freq {
		rows = append(rows, types.SkillCount{Skill: skill, Count: count})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		pi, iKnown := position[rows[i].Skill]
		pj, jKnown := position[rows[j].Skill]
		switch {
		case iKnown && jKnown:
			return pi < pj
		case iKnown != jKnown:
			return iKnown
		default:
			return rows[i].Skill < rows[j].Skill
		}
	})

	return rows
}

// ScoreHistogram partitions the observed score range into bucketCount
// equal-width buckets. Buckets are half-open except the last, which includes
// the maximum. When every score is equal a single bucket spanning that value
// holds all documents. bucketCount below 1 is treated as 1.
func (b *Batch) ScoreHistogram(bucketCount int) []types.HistogramBucket {
	if len(b.docs) == 0 {
		return []types.HistogramBucket{}
	}
	if bucketCount < 1 {
		bucketCount = 1
	}

	lo, hi := b.docs[0].Score, b.docs[0].Score
	for _, doc := range b.docs[1:] {
		lo = min(lo, doc.Score)
		hi = max(hi, doc.Score)
	}

	if lo == hi {
		return []types.HistogramBucket{{Lower: lo, Upper: hi, Count: len(b.docs)}}
	}

	width := (hi - lo) / float64(bucketCount)
	buckets := make([]types.HistogramBucket, bucketCount)
	for i := range buckets {
		buckets[i].Lower = lo + float64(i)*width
		buckets[i].Upper = lo + float64(i+1)*width
	}
	buckets[bucketCount-1].Upper = hi

	for _, doc := range b.docs {
		idx := int((doc.Score - lo) / width)
		if idx >= bucketCount {
			idx = bucketCount - 1
		}
		if idx < 0 {
			idx = 0
		}
		buckets[idx].Count++
	}

	return buckets
}
