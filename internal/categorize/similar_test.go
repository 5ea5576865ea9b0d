package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

func TestFindSimilar(t *testing.T) {
	existing := []*types.Category{
		{Name: "Landing Pages", Slug: "landing-pages"},
		{Name: "Sales Pages", Slug: "sales-pages"},
		{Name: "Member Pages", Slug: "member-pages"},
		{Name: "Content", Slug: "content"},
		{Name: "UX", Slug: "ux"},
	}
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"shared word", "Landing Forms", []string{"landing-pages"}},
		{"substring of existing word", "Land", []string{"landing-pages"}},
		{"existing word inside candidate", "Contents Hub", []string{"content"}},
		{"case and space insensitive", "  SALES  ", []string{"sales-pages"}},
		{"plural word hits every page category", "page", []string{"landing-pages", "sales-pages", "member-pages"}},
		{"short words ignored", "ux ab", nil},
		{"no overlap", "Webinars", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range FindSimilar(tt.in, existing) {
				got = append(got, c.Slug)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlugifyAndLegacySlug(t *testing.T) {
	assert.Equal(t, "quiz-funnels", Slugify("  Quiz   Funnels! "))
	assert.Equal(t, "a-b-c", Slugify("a_b--c"))
	assert.Empty(t, Slugify("!!"))

	for label, want := range map[string]string{
		"traffic-sources-paid": "paid-traffic",
		"Lead Capture":         "landing-pages",
		"lead_capture":         "landing-pages",
		"NURTURING":            "lead-nurturing",
		"sales-conversion":     "sales-pages",
	} {
		got, ok := LegacySlug(label)
		assert.True(t, ok, label)
		assert.Equal(t, want, got, label)
	}
	_, ok := LegacySlug("unheard-of")
	assert.False(t, ok)
}
