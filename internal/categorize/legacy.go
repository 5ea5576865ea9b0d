package categorize

import (
	"strings"
	"unicode"
)

// legacySlugs maps historical free-text category labels to the slugs of the
// normalized categories that replaced them.
var legacySlugs = map[string]string{
	"traffic-sources-paid":    "paid-traffic",
	"traffic-sources-organic": "organic-traffic",
	"traffic-sources-crm":     "crm-traffic",
	"traffic-sources-offline": "offline-traffic",
	"paid":                    "paid-traffic",
	"organic":                 "organic-traffic",

	"lead-capture":     "landing-pages",
	"landing":          "landing-pages",
	"sales-conversion": "sales-pages",
	"sales":            "sales-pages",
	"content":          "content-pages",
	"social-content":   "content-pages",
	"membership":       "member-pages",
	"utility":          "member-pages",

	"nurturing":         "lead-nurturing",
	"launch":            "digital-launch",
	"social-automation": "social-automation",
	"automation":        "workflow-automation",
}

// LegacySlug returns the normalized slug for a legacy category label. The
// label is slugified first, so "Lead Capture" and "lead_capture" both match.
func LegacySlug(label string) (string, bool) {
	slug, ok := legacySlugs[Slugify(label)]
	return slug, ok
}

// Slugify lower-cases s and joins its letter and digit runs with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
