package generation

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"launchpad_backend/internal/workflow"
)

const promptTemplate = `You are an experienced startup advisor helping a founder in India plan a new venture.

Workflow step: {{.Title}}
Goal of this step: {{.Description}}

Startup idea:
{{.Idea}}
{{if .Context}}
What the founder has decided so far:
{{.Context}}
{{end}}
{{.Instructions}}

Respond with a single JSON object and nothing else. It must satisfy this JSON schema:
{{.Schema}}
`

// stepInstructions holds the step specific part of each prompt.
var stepInstructions = map[string]string{
	workflow.StepIdea:           "Sharpen the idea into a one line title, a short summary, the problem, the solution, the target audience, a single category (for example EdTech, HealthTech, FinTech, AgriTech) and five to eight lowercase keywords.",
	workflow.StepMarket:         "Estimate the addressable market, list current trends, three to five realistic competitors with one line descriptions, and the customer segments to target first.",
	workflow.StepBusinessModel:  "Propose revenue streams, a pricing approach, the main cost items and the distribution channels.",
	workflow.StepTeam:           "List the founding roles with their responsibilities, the skills the team needs and a hiring plan for the first year.",
	workflow.StepMVP:            "Define the minimum viable product: features with priority high, medium or low, a delivery timeline and a pragmatic tech stack.",
	workflow.StepLegal:          "Recommend an entity type, the registrations and licences needed, compliance obligations and how to protect intellectual property.",
	workflow.StepFunding:        "Suggest the funding stage, a realistic amount to raise, likely sources of capital and how the money would be used.",
	workflow.StepStrategy:       "Set measurable goals for the first year, marketing tactics and milestones with the month they should be reached.",
	workflow.StepScaling:        "Describe growth phases with their focus, the main risks while scaling and the metrics to track.",
	workflow.StepSustainability: "Describe the social and environmental impact, sustainable operating practices and the long term vision.",
}

var parsedPrompt = template.Must(template.New("prompt").Parse(promptTemplate))

type promptData struct {
	Title        string
	Description  string
	Idea         string
	Context      string
	Instructions string
	Schema       string
}

// BuildPrompt renders the prompt sent to the model for one step.
func BuildPrompt(step workflow.Step, in Input) (string, error) {
	data := promptData{
		Title:        step.Title,
		Description:  step.Description,
		Idea:         strings.TrimSpace(in.Idea),
		Context:      strings.TrimSpace(in.Context),
		Instructions: stepInstructions[step.Key],
		Schema:       compactSchema(stepSchemas[step.Key]),
	}

	var buf bytes.Buffer
	if err := parsedPrompt.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt for %s: %w", step.Key, err)
	}
	return buf.String(), nil
}

// compactSchema drops the indentation of the schema literals.
func compactSchema(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
