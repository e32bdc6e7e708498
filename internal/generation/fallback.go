package generation

import (
	"strings"
	"unicode"

	"launchpad_backend/internal/workflow"
)

const maxFallbackKeywords = 8

var stopWords = map[string]bool{
	"about": true, "also": true, "and": true, "based": true, "being": true,
	"build": true, "from": true, "have": true, "help": true, "helps": true,
	"into": true, "like": true, "make": true, "more": true, "that": true,
	"their": true, "them": true, "they": true, "this": true, "through": true,
	"using": true, "want": true, "which": true, "will": true, "with": true,
	"your": true, "platform": true, "startup": true, "people": true,
}

// categoryHints maps a keyword fragment to a category, first hit wins.
var categoryHints = []struct {
	fragment string
	category string
}{
	{"educat", "EdTech"},
	{"learn", "EdTech"},
	{"student", "EdTech"},
	{"school", "EdTech"},
	{"health", "HealthTech"},
	{"medic", "HealthTech"},
	{"clinic", "HealthTech"},
	{"doctor", "HealthTech"},
	{"pay", "FinTech"},
	{"financ", "FinTech"},
	{"loan", "FinTech"},
	{"bank", "FinTech"},
	{"farm", "AgriTech"},
	{"agri", "AgriTech"},
	{"crop", "AgriTech"},
	{"solar", "CleanTech"},
	{"energy", "CleanTech"},
	{"waste", "CleanTech"},
	{"recycl", "CleanTech"},
	{"shop", "E-commerce"},
	{"retail", "E-commerce"},
	{"delivery", "Logistics"},
	{"logistic", "Logistics"},
}

// Keywords extracts up to eight distinct lowercase words from text.
func Keywords(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool)
	out := make([]string, 0, maxFallbackKeywords)
	for _, w := range words {
		if len([]rune(w)) < 4 || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
		if len(out) == maxFallbackKeywords {
			break
		}
	}
	return out
}

// GuessCategory picks a coarse category from the idea text.
func GuessCategory(text string) string {
	lower := strings.ToLower(text)
	for _, h := range categoryHints {
		if strings.Contains(lower, h.fragment) {
			return h.category
		}
	}
	return "General"
}

func shortTitle(idea string) string {
	words := strings.Fields(idea)
	if len(words) == 0 {
		return "Untitled startup"
	}
	if len(words) > 6 {
		words = words[:6]
	}
	title := strings.Join(words, " ")
	r := []rune(title)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Fallback builds a deterministic payload for step from the founder input.
// The result always satisfies the step schema.
func Fallback(stepKey string, in Input) map[string]any {
	idea := strings.TrimSpace(in.Idea)
	if idea == "" {
		idea = "a new startup"
	}
	category := GuessCategory(idea)
	keywords := Keywords(idea)

	switch stepKey {
	case workflow.StepIdea:
		return map[string]any{
			"title":          shortTitle(idea),
			"summary":        idea,
			"problem":        "Customers currently lack a simple, affordable way to address: " + idea,
			"solution":       "A focused product that solves this for an initial niche before expanding.",
			"targetAudience": "Early adopters in urban and tier-2 Indian cities",
			"category":       category,
			"keywords":       keywords,
		}
	case workflow.StepMarket:
		return map[string]any{
			"marketSize": "Estimate TAM, SAM and SOM for the " + category + " segment using public industry reports.",
			"trends": []string{
				"Rapid smartphone and UPI adoption",
				"Growing demand outside metro cities",
				"Increasing investor interest in " + category,
			},
			"competitors": []map[string]any{
				{"name": "Established incumbents", "description": "Large players with broad but generic offerings."},
				{"name": "Local alternatives", "description": "Informal and offline solutions customers use today."},
			},
			"segments": []string{"Early adopters", "Small businesses", "Price sensitive consumers"},
		}
	case workflow.StepBusinessModel:
		return map[string]any{
			"revenueStreams": []string{"Subscription plans", "Transaction or service fees", "Partnerships"},
			"pricing":        "Freemium entry tier with a paid plan priced for the Indian market.",
			"costStructure":  []string{"Product development", "Customer acquisition", "Operations and support"},
			"channels":       []string{"Direct online sales", "Social media", "Channel partners"},
		}
	case workflow.StepTeam:
		return map[string]any{
			"roles": []map[string]any{
				{"title": "CEO", "responsibilities": "Vision, fundraising and partnerships"},
				{"title": "CTO", "responsibilities": "Product architecture and engineering"},
				{"title": "Head of Growth", "responsibilities": "Marketing, sales and customer success"},
			},
			"skills":     append([]string{"product management", "software engineering", "sales"}, keywords...),
			"hiringPlan": "Start with the founding team, add two engineers after the MVP and a growth hire after first revenue.",
		}
	case workflow.StepMVP:
		return map[string]any{
			"features": []map[string]any{
				{"name": "User onboarding", "priority": "high"},
				{"name": "Core " + category + " workflow", "priority": "high"},
				{"name": "Payments", "priority": "medium"},
				{"name": "Analytics dashboard", "priority": "low"},
			},
			"timeline":  "Twelve weeks from design to a closed beta.",
			"techStack": []string{"Mobile-first web app", "Managed cloud database", "UPI payment gateway"},
		}
	case workflow.StepLegal:
		return map[string]any{
			"entityType":    "Private Limited Company",
			"registrations": []string{"Company incorporation (MCA)", "PAN and TAN", "GST registration", "Startup India (DPIIT) recognition"},
			"compliance":    []string{"Digital Personal Data Protection Act", "Annual ROC filings", "Founder agreements and ESOP policy"},
			"ipProtection":  "Register the trademark early and keep code and content under company ownership.",
		}
	case workflow.StepFunding:
		return map[string]any{
			"stage":      "Pre-seed",
			"amount":     "INR 50 lakh to 1 crore",
			"sources":    []string{"Bootstrapping", "Angel investors", "Government grants and incubators"},
			"useOfFunds": []string{"Product development", "Initial marketing", "Key hires"},
		}
	case workflow.StepStrategy:
		return map[string]any{
			"goals":     []string{"Launch the MVP", "Reach the first 1000 users", "Validate willingness to pay"},
			"marketing": []string{"Content and community", "Referral incentives", "Partnerships with local organisations"},
			"milestones": []map[string]any{
				{"title": "Closed beta", "month": 3},
				{"title": "Public launch", "month": 6},
				{"title": "First paying customers", "month": 9},
			},
		}
	case workflow.StepScaling:
		return map[string]any{
			"phases": []map[string]any{
				{"name": "Validation", "focus": "Product market fit in one city"},
				{"name": "Expansion", "focus": "Replicate in new cities and segments"},
				{"name": "Scale", "focus": "Automate operations and grow the team"},
			},
			"risks":   []string{"High customer acquisition cost", "Competition from incumbents", "Operational complexity"},
			"metrics": []string{"Monthly active users", "Retention", "CAC to LTV ratio"},
		}
	case workflow.StepSustainability:
		return map[string]any{
			"impact":         "Improve access to " + category + " services for underserved communities.",
			"practices":      []string{"Remote-first operations", "Responsible data handling", "Fair pricing"},
			"longTermVision": "Become the trusted " + category + " brand for the next hundred million users.",
		}
	}
	return map[string]any{}
}
