// Package workflow describes the ten ordered startup-planning steps.
package workflow

const (
	StepIdea           = "idea"
	StepMarket         = "market"
	StepBusinessModel  = "business-model"
	StepTeam           = "team"
	StepMVP            = "mvp"
	StepLegal          = "legal"
	StepFunding        = "funding"
	StepStrategy       = "strategy"
	StepScaling        = "scaling"
	StepSustainability = "sustainability"
)

type Step struct {
	Key         string `json:"key"`
	Order       int    `json:"order"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var steps = []Step{
	{StepIdea, 1, "Idea Validation", "Sharpen the problem, the customer and the proposed solution."},
	{StepMarket, 2, "Market Research", "Size the market and map competitors and trends."},
	{StepBusinessModel, 3, "Business Model", "Define revenue streams, pricing and cost structure."},
	{StepTeam, 4, "Team Building", "Identify founding roles, skill gaps and cofounders."},
	{StepMVP, 5, "MVP Planning", "Scope the minimum viable product and its milestones."},
	{StepLegal, 6, "Legal & Compliance", "Choose an entity, register and cover compliance basics."},
	{StepFunding, 7, "Funding", "Pick funding routes and prepare the pitch."},
	{StepStrategy, 8, "Go-to-Market Strategy", "Plan channels, positioning and launch."},
	{StepScaling, 9, "Scaling", "Plan growth, hiring and operations beyond launch."},
	{StepSustainability, 10, "Sustainability", "Build long-term resilience and impact."},
}

// All returns the steps in workflow order.
func All() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

func First() Step {
	return steps[0]
}

func Lookup(key string) (Step, bool) {
	for _, s := range steps {
		if s.Key == key {
			return s, true
		}
	}
	return Step{}, false
}

// Next returns the step after key. ok is false for the last or an unknown step.
func Next(key string) (Step, bool) {
	for i, s := range steps {
		if s.Key == key && i+1 < len(steps) {
			return steps[i+1], true
		}
	}
	return Step{}, false
}

// NextIncomplete returns the first step, in order, that is not completed.
// When everything is done the last step is returned.
func NextIncomplete(completed map[string]bool) Step {
	for _, s := range steps {
		if !completed[s.Key] {
			return s
		}
	}
	return steps[len(steps)-1]
}

// Progress is the integer percentage of known steps that are completed.
func Progress(completed map[string]bool) int {
	done := 0
	for _, s := range steps {
		if completed[s.Key] {
			done++
		}
	}
	return done * 100 / len(steps)
}
