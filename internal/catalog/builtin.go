package catalog

import "github.com/mesh-intelligence/funnelkit/pkg/types"

// builtIn is the system template catalog. Category strings use the legacy
// label set; the category resolver maps them to normalized categories.
var builtIn = []types.TemplateDefinition{
	// Traffic sources.
	{
		Label:       "Facebook Ads",
		Category:    "traffic-sources-paid",
		Tags:        []string{"paid", "social"},
		Icon:        "facebook",
		Color:       "#1877F2",
		Description: "Paid campaigns on Facebook and Instagram placements.",
		DefaultConfiguration: map[string]any{
			"budget":    0,
			"objective": "conversions",
		},
	},
	{
		Label:       "Google Ads",
		Category:    "traffic-sources-paid",
		Tags:        []string{"paid", "search"},
		Icon:        "google",
		Color:       "#4285F4",
		Description: "Search and display advertising on Google.",
		DefaultConfiguration: map[string]any{
			"budget":  0,
			"network": "search",
		},
	},
	{
		Label:       "TikTok Ads",
		Category:    "traffic-sources-paid",
		Tags:        []string{"paid", "social"},
		Icon:        "tiktok",
		Color:       "#000000",
		Description: "In-feed video ads on TikTok.",
	},
	{
		Label:       "LinkedIn Ads",
		Category:    "traffic-sources-paid",
		Tags:        []string{"paid", "b2b"},
		Icon:        "linkedin",
		Color:       "#0A66C2",
		Description: "Sponsored content for professional audiences.",
	},
	{
		Label:       "YouTube Ads",
		Category:    "traffic-sources-paid",
		Tags:        []string{"paid", "video"},
		Icon:        "youtube",
		Color:       "#FF0000",
		Description: "Pre-roll and discovery video advertising.",
	},
	{
		Label:       "Organic Search (SEO)",
		Category:    "traffic-sources-organic",
		Tags:        []string{"organic", "search"},
		Icon:        "search",
		Color:       "#34A853",
		Description: "Visitors from unpaid search results.",
	},
	{
		Label:       "Organic Social",
		Category:    "traffic-sources-organic",
		Tags:        []string{"organic", "social"},
		Icon:        "share",
		Color:       "#E1306C",
		Description: "Posts and profiles on social networks.",
	},
	{
		Label:       "Affiliate Referral",
		Category:    "traffic-sources-organic",
		Tags:        []string{"organic", "partners"},
		Icon:        "handshake",
		Color:       "#F59E0B",
		Description: "Traffic sent by affiliates and partners.",
	},
	{
		Label:       "CRM Email List",
		Category:    "traffic-sources-crm",
		Tags:        []string{"crm", "email"},
		Icon:        "users",
		Color:       "#6366F1",
		Description: "Contacts already in your CRM.",
	},
	{
		Label:       "Offline Event",
		Category:    "traffic-sources-offline",
		Tags:        []string{"offline"},
		Icon:        "calendar",
		Color:       "#64748B",
		Description: "Leads collected at conferences, fairs and meetups.",
	},

	// Pages.
	{
		Label:       "Landing Page",
		Category:    "lead-capture",
		Tags:        []string{"lead"},
		Icon:        "layout",
		Color:       "#10B981",
		Description: "A focused page with a single call to action.",
		DefaultConfiguration: map[string]any{
			"headline": "",
			"cta":      "Get started",
		},
	},
	{
		Label:       "Opt-in Page",
		Category:    "lead-capture",
		Tags:        []string{"lead"},
		Icon:        "mail-open",
		Color:       "#10B981",
		Description: "Collects an email address in exchange for an offer.",
	},
	{
		Label:       "Lead Magnet Download",
		Category:    "lead-capture",
		Tags:        []string{"lead", "download"},
		Icon:        "download",
		Color:       "#14B8A6",
		Description: "Delivers a free resource after opt-in.",
	},
	{
		Label:       "Sales Page",
		Category:    "sales-conversion",
		Tags:        []string{"sales"},
		Icon:        "dollar-sign",
		Color:       "#F97316",
		Description: "Long-form page presenting an offer.",
	},
	{
		Label:       "Checkout Page",
		Category:    "sales-conversion",
		Tags:        []string{"sales", "payment"},
		Icon:        "credit-card",
		Color:       "#F97316",
		Description: "Collects payment details for an order.",
		DefaultConfiguration: map[string]any{
			"currency": "USD",
		},
	},
	{
		Label:       "Upsell Page",
		Category:    "sales-conversion",
		Tags:        []string{"sales"},
		Icon:        "trending-up",
		Color:       "#FB923C",
		Description: "One-click offer shown after purchase.",
	},
	{
		Label:       "Thank You Page",
		Category:    "sales-conversion",
		Tags:        []string{"confirmation"},
		Icon:        "check-circle",
		Color:       "#22C55E",
		Description: "Confirms an order or registration.",
	},
	{
		Label:       "Webinar Registration",
		Category:    "lead-capture",
		Tags:        []string{"webinar", "lead"},
		Icon:        "video",
		Color:       "#8B5CF6",
		Description: "Registers attendees for a live or recorded webinar.",
	},
	{
		Label:       "Blog Article",
		Category:    "content",
		Tags:        []string{"content"},
		Icon:        "file-text",
		Color:       "#0EA5E9",
		Description: "Educational content that warms up visitors.",
	},
	{
		Label:       "Social Content Post",
		Category:    "social-content",
		Tags:        []string{"content", "social"},
		Icon:        "image",
		Color:       "#EC4899",
		Description: "A post published on a social profile.",
	},
	{
		Label:       "Member Area",
		Category:    "membership",
		Tags:        []string{"members"},
		Icon:        "lock",
		Color:       "#475569",
		Description: "Gated content for customers.",
	},
	{
		Label:       "Booking Calendar",
		Category:    "utility",
		Tags:        []string{"utility"},
		Icon:        "clock",
		Color:       "#0F766E",
		Description: "Lets visitors schedule a call.",
	},

	// Automation actions.
	{
		Label:       "Email Nurture Sequence",
		Category:    "nurturing",
		Tags:        []string{"email", "nurture"},
		Icon:        "mail",
		Color:       "#3B82F6",
		Description: "A timed series of emails that builds trust.",
		DefaultConfiguration: map[string]any{
			"emails":     5,
			"delay_days": 2,
		},
	},
	{
		Label:       "Abandoned Cart Follow-up",
		Category:    "nurturing",
		Tags:        []string{"email", "recovery"},
		Icon:        "shopping-cart",
		Color:       "#2563EB",
		Description: "Reminds buyers who left checkout.",
	},
	{
		Label:       "SMS Reminder",
		Category:    "nurturing",
		Tags:        []string{"sms"},
		Icon:        "message-square",
		Color:       "#7C3AED",
		Description: "Text message sent before an event.",
	},
	{
		Label:       "Product Launch Sequence",
		Category:    "launch",
		Tags:        []string{"launch"},
		Icon:        "rocket",
		Color:       "#DC2626",
		Description: "Pre-launch, open-cart and close-cart messages.",
	},
	{
		Label:       "Webinar Launch Workflow",
		Category:    "launch",
		Tags:        []string{"launch", "webinar"},
		Icon:        "radio",
		Color:       "#B91C1C",
		Description: "Invites, reminders and replay for a webinar launch.",
	},
	{
		Label:       "Social Post Scheduler",
		Category:    "social-automation",
		Tags:        []string{"social", "content"},
		Icon:        "share-2",
		Color:       "#DB2777",
		Description: "Publishes content to social profiles on a schedule.",
		Type:        "automation",
	},
	{
		Label:       "Tag Contact Workflow",
		Category:    "automation",
		Tags:        []string{"crm"},
		Icon:        "tag",
		Color:       "#4B5563",
		Description: "Adds or removes tags based on behaviour.",
	},
}
