// Package stats computes category breakdowns over a snapshot of template
// records. Every record lands in exactly one bucket of its taxonomy, so the
// bucket counts of a taxonomy always add up to its total.
package stats

import (
	"strings"
	"unicode"

	"github.com/mesh-intelligence/funnelkit/internal/classify"
	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// Compute returns the breakdown of records. Records with an unknown taxonomy
// are classified first. Nil records are ignored.
func Compute(records []*types.Template) types.StatsBreakdown {
	out := types.StatsBreakdown{
		PerTaxonomyTotal:   make(map[types.Taxonomy]int, len(types.Taxonomies)),
		PerTaxonomyBuckets: make(map[types.Taxonomy][]types.BucketCount, len(types.Taxonomies)),
	}

	counts := make(map[types.Taxonomy]map[string]int, len(types.Taxonomies))
	for _, t := range types.Taxonomies {
		counts[t] = make(map[string]int)
		out.PerTaxonomyTotal[t] = 0
	}

	for _, rec := range records {
		if rec == nil {
			continue
		}
		t := rec.Taxonomy
		if !t.Valid() {
			t = classify.Classify(rec)
		}
		out.Total++
		out.PerTaxonomyTotal[t]++
		counts[t][Bucket(t, rec)]++
	}

	for _, t := range types.Taxonomies {
		names := BucketNames(t)
		buckets := make([]types.BucketCount, 0, len(names))
		for _, name := range names {
			buckets = append(buckets, types.BucketCount{Name: name, Count: counts[t][name]})
		}
		out.PerTaxonomyBuckets[t] = buckets
	}

	out.Discrepancies = Reconcile(out)
	return out
}

// Bucket returns the bucket rec falls into within taxonomy t.
func Bucket(t types.Taxonomy, rec *types.Template) string {
	text := matchText(rec)
	tokens := tokenSet(text)
	for _, r := range bucketRules[t] {
		if r.match(text, tokens) {
			return r.name
		}
	}
	return types.OtherBucket
}

// Reconcile compares every taxonomy's bucket sum against its total and
// returns the mismatches. It never fails.
func Reconcile(s types.StatsBreakdown) []types.StatsDiscrepancy {
	var out []types.StatsDiscrepancy
	for _, t := range types.Taxonomies {
		if sum := s.BucketSum(t); sum != s.PerTaxonomyTotal[t] {
			out = append(out, types.StatsDiscrepancy{Taxonomy: t, Total: s.PerTaxonomyTotal[t], BucketSum: sum})
		}
	}
	return out
}

// matchText joins the legacy category, the name and the tags of rec.
func matchText(rec *types.Template) string {
	parts := make([]string, 0, len(rec.Tags)+2)
	parts = append(parts, rec.Category, rec.Name)
	parts = append(parts, rec.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

func tokenSet(s string) map[string]bool {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
