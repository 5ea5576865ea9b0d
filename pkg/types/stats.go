package types

// OtherBucket is the name of the implicit bucket that absorbs records no
// explicit bucket rule matched.
const OtherBucket = "other"

// BucketCount is one named partition of a taxonomy total.
type BucketCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StatsDiscrepancy records a taxonomy whose bucket sum disagrees with its
// total. A non-empty list indicates a defect in the bucket rules.
type StatsDiscrepancy struct {
	Taxonomy  Taxonomy `json:"taxonomy"`
	Total     int      `json:"total"`
	BucketSum int      `json:"bucket_sum"`
}

// StatsBreakdown is a computed, non-persisted view over a record snapshot.
// For every taxonomy the bucket counts sum to PerTaxonomyTotal.
type StatsBreakdown struct {
	Total              int                        `json:"total"`
	PerTaxonomyTotal   map[Taxonomy]int           `json:"per_taxonomy_total"`
	PerTaxonomyBuckets map[Taxonomy][]BucketCount `json:"per_taxonomy_buckets"`
	Discrepancies      []StatsDiscrepancy         `json:"discrepancies,omitempty"`
}

// Bucket returns the count of the named bucket in taxonomy t, or 0.
func (s StatsBreakdown) Bucket(t Taxonomy, name string) int {
	for _, b := range s.PerTaxonomyBuckets[t] {
		if b.Name == name {
			return b.Count
		}
	}
	return 0
}

// BucketSum returns the sum of all bucket counts of taxonomy t.
func (s StatsBreakdown) BucketSum(t Taxonomy) int {
	sum := 0
	for _, b := range s.PerTaxonomyBuckets[t] {
		sum += b.Count
	}
	return sum
}

// Reconciled reports whether no discrepancy was flagged.
func (s StatsBreakdown) Reconciled() bool {
	return len(s.Discrepancies) == 0
}
