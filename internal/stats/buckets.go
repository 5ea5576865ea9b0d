package stats

import (
	"strings"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// bucketRule assigns a record to a named bucket when any word matches a
// whole token or any fragment occurs in the match text.
type bucketRule struct {
	name      string
	words     []string
	fragments []string
}

func (r bucketRule) match(text string, tokens map[string]bool) bool {
	for _, w := range r.words {
		if tokens[w] {
			return true
		}
	}
	for _, f := range r.fragments {
		if strings.Contains(text, f) {
			return true
		}
	}
	return false
}

// bucketRules are tried in order within each taxonomy; the first match wins.
// Records matching none are counted in types.OtherBucket.
var bucketRules = map[types.Taxonomy][]bucketRule{
	types.TaxonomySource: {
		{
			name:      "paid-traffic",
			words:     []string{"paid", "ads", "ad", "ppc", "cpc", "cpm", "sponsored", "retargeting", "remarketing"},
			fragments: []string{"advertis", "paid-traffic"},
		},
		{
			name:      "organic-traffic",
			words:     []string{"organic", "seo", "affiliate", "affiliates", "referral", "referrals", "podcast", "influencer"},
			fragments: []string{"organic-traffic", "word of mouth"},
		},
	},
	types.TaxonomyPage: {
		{
			name: "sales-and-lead",
			words: []string{
				"sales", "checkout", "upsell", "downsell", "order", "payment", "lead", "leads",
				"landing", "optin", "squeeze", "webinar", "thank", "confirmation",
			},
			fragments: []string{"opt-in", "lead-capture", "lead magnet", "sales-conversion", "thank you"},
		},
		{
			name:      "content-and-social",
			words:     []string{"content", "blog", "article", "social", "post", "video", "reel", "story"},
			fragments: []string{"social-content"},
		},
		{
			name: "member-and-utility",
			words: []string{
				"member", "members", "membership", "utility", "booking", "calendar", "login",
				"account", "portal", "course",
			},
			fragments: []string{"member area", "members area"},
		},
	},
	types.TaxonomyAction: {
		{
			name:      "nurturing",
			words:     []string{"nurture", "nurturing", "email", "sms", "reminder", "drip", "recovery", "autoresponder"},
			fragments: []string{"nurtur", "follow-up", "follow up"},
		},
		{
			name:      "digital-launch",
			words:     []string{"launch", "prelaunch", "countdown", "webinar"},
			fragments: []string{"pre-launch", "product launch"},
		},
		{
			name:      "social-and-content",
			words:     []string{"social", "content", "post", "posts", "schedule", "scheduler", "publish"},
			fragments: []string{"social-automation"},
		},
	},
}

// BucketNames returns the bucket names of taxonomy t in display order,
// ending with types.OtherBucket.
func BucketNames(t types.Taxonomy) []string {
	rules := bucketRules[t]
	names := make([]string, 0, len(rules)+1)
	for _, r := range rules {
		names = append(names, r.name)
	}
	return append(names, types.OtherBucket)
}
