package classify

import (
	"strings"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// vocabulary matches either whole tokens (short words such as "ads" that
// would otherwise hit "leads") or substrings (stems and phrases).
type vocabulary struct {
	words     []string
	fragments []string
}

func (v vocabulary) matchText(text string, tokens map[string]bool) bool {
	if text == "" {
		return false
	}
	for _, w := range v.words {
		if tokens[w] {
			return true
		}
	}
	for _, f := range v.fragments {
		if strings.Contains(text, f) {
			return true
		}
	}
	return false
}

// ruleGroup is one disjunction of predicates that maps to a taxonomy.
type ruleGroup struct {
	taxonomy types.Taxonomy

	categoryPrefixes []string   // category starts with any of these
	kinds            []string   // type equals any of these
	categoryVocab    vocabulary // applied to category
	labelVocab       vocabulary // applied to label and type
}

func (g ruleGroup) match(in input) bool {
	for _, p := range g.categoryPrefixes {
		if in.category != "" && strings.HasPrefix(in.category, p) {
			return true
		}
	}
	for _, k := range g.kinds {
		if in.kind == k {
			return true
		}
	}
	if g.categoryVocab.matchText(in.category, in.categoryTokens) {
		return true
	}
	if g.labelVocab.matchText(in.label, in.labelTokens) {
		return true
	}
	return g.labelVocab.matchText(in.kind, in.kindTokens)
}

var sourceVocab = vocabulary{
	words: []string{
		"ads", "ad", "ppc", "cpc", "cpm", "seo", "sem", "crm", "organic",
		"traffic", "sponsored", "affiliate", "affiliates", "referral",
		"referrals", "offline", "podcast", "influencer", "retargeting",
		"remarketing",
	},
	fragments: []string{
		"advertis", "paid search", "paid social", "search engine",
		"email list", "contact list", "direct mail", "qr code",
		"word of mouth", "cold outreach",
	},
}

var actionVocab = vocabulary{
	words: []string{
		"automation", "automations", "sequence", "sequences", "workflow",
		"workflows", "launch", "drip", "autoresponder", "trigger", "webhook",
		"sms", "broadcast", "reminder", "delay", "wait",
	},
	fragments: []string{
		"automat", "nurtur", "follow-up", "follow up", "pre-launch",
		"prelaunch", "send email", "send sms", "add tag", "remove tag",
		"notify",
	},
}

var pageVocab = vocabulary{
	words: []string{
		"page", "pages", "landing", "form", "forms", "checkout", "sales",
		"optin", "squeeze", "upsell", "downsell", "webinar", "blog",
		"article", "survey", "quiz", "membership", "booking", "calendar",
		"thank", "order",
	},
	fragments: []string{
		"landing", "lead-magnet", "lead magnet", "opt-in", "sales-page",
		"sales page", "social-content", "social content", "social post",
		"member area", "members area", "thank-you", "thank you",
	},
}

// ruleGroups are evaluated in this order. Acquisition channels are the least
// ambiguous signal, automation vocabulary the next, and page vocabulary the
// most generic.
var ruleGroups = []ruleGroup{
	{
		taxonomy:         types.TaxonomySource,
		categoryPrefixes: []string{"traffic-source", "traffic_source", "traffic source", "source-", "sources-"},
		kinds:            []string{"source", "traffic", "traffic-source", "trafficsource"},
		categoryVocab:    sourceVocab,
		labelVocab:       sourceVocab,
	},
	{
		taxonomy:         types.TaxonomyAction,
		categoryPrefixes: []string{"action-", "actions-"},
		kinds:            []string{"action", "automation", "trigger"},
		categoryVocab:    actionVocab,
		labelVocab:       actionVocab,
	},
	{
		taxonomy:         types.TaxonomyPage,
		categoryPrefixes: []string{"page-", "pages-"},
		kinds:            []string{"page", "landing-page"},
		categoryVocab:    pageVocab,
		labelVocab:       pageVocab,
	},
}

// defaultRule is a narrow heuristic consulted only when no rule group matched.
type defaultRule struct {
	taxonomy types.Taxonomy
	vocab    vocabulary
}

func (d defaultRule) match(in input) bool {
	return d.vocab.matchText(in.label, in.labelTokens) ||
		d.vocab.matchText(in.category, in.categoryTokens) ||
		d.vocab.matchText(in.kind, in.kindTokens)
}

var defaults = []defaultRule{
	{
		taxonomy: types.TaxonomyPage,
		vocab: vocabulary{
			words: []string{
				"social", "media", "instagram", "facebook", "tiktok", "youtube",
				"twitter", "pinterest", "linkedin", "reel", "reels", "story",
				"stories", "post", "video",
			},
		},
	},
	{
		taxonomy: types.TaxonomyAction,
		vocab: vocabulary{
			words:     []string{"email", "emails", "mail", "newsletter", "campaign", "campaigns"},
			fragments: []string{"e-mail"},
		},
	},
}
