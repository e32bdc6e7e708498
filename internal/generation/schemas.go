package generation

import (
	"fmt"

	"launchpad_backend/internal/workflow"

	"github.com/xeipuuv/gojsonschema"
)

// stepSchemas describe the minimum shape a generated payload must have.
// Extra properties are allowed, the model tends to add some.
var stepSchemas = map[string]string{
	workflow.StepIdea: `{
		"type": "object",
		"required": ["title", "summary", "problem", "solution", "targetAudience", "category", "keywords"],
		"properties": {
			"title": {"type": "string", "minLength": 1},
			"summary": {"type": "string"},
			"problem": {"type": "string"},
			"solution": {"type": "string"},
			"targetAudience": {"type": "string"},
			"category": {"type": "string"},
			"keywords": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	workflow.StepMarket: `{
		"type": "object",
		"required": ["marketSize", "trends", "competitors", "segments"],
		"properties": {
			"marketSize": {"type": "string"},
			"trends": {"type": "array", "items": {"type": "string"}},
			"competitors": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["name", "description"],
					"properties": {
						"name": {"type": "string"},
						"description": {"type": "string"}
					}
				}
			},
			"segments": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	workflow.StepBusinessModel: `{
		"type": "object",
		"required": ["revenueStreams", "pricing", "costStructure", "channels"],
		"properties": {
			"revenueStreams": {"type": "array", "items": {"type": "string"}, "minItems": 1},
			"pricing": {"type": "string"},
			"costStructure": {"type": "array", "items": {"type": "string"}},
			"channels": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	workflow.StepTeam: `{
		"type": "object",
		"required": ["roles", "skills", "hiringPlan"],
		"properties": {
			"roles": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["title", "responsibilities"],
					"properties": {
						"title": {"type": "string"},
						"responsibilities": {"type": "string"}
					}
				}
			},
			"skills": {"type": "array", "items": {"type": "string"}},
			"hiringPlan": {"type": "string"}
		}
	}`,
	workflow.StepMVP: `{
		"type": "object",
		"required": ["features", "timeline", "techStack"],
		"properties": {
			"features": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["name", "priority"],
					"properties": {
						"name": {"type": "string"},
						"priority": {"type": "string", "enum": ["high", "medium", "low"]}
					}
				}
			},
			"timeline": {"type": "string"},
			"techStack": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	workflow.StepLegal: `{
		"type": "object",
		"required": ["entityType", "registrations", "compliance", "ipProtection"],
		"properties": {
			"entityType": {"type": "string"},
			"registrations": {"type": "array", "items": {"type": "string"}},
			"compliance": {"type": "array", "items": {"type": "string"}},
			"ipProtection": {"type": "string"}
		}
	}`,
	workflow.StepFunding: `{
		"type": "object",
		"required": ["stage", "amount", "sources", "useOfFunds"],
		"properties": {
			"stage": {"type": "string"},
			"amount": {"type": "string"},
			"sources": {"type": "array", "items": {"type": "string"}, "minItems": 1},
			"useOfFunds": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	workflow.StepStrategy: `{
		"type": "object",
		"required": ["goals", "marketing", "milestones"],
		"properties": {
			"goals": {"type": "array", "items": {"type": "string"}, "minItems": 1},
			"marketing": {"type": "array", "items": {"type": "string"}},
			"milestones": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["title", "month"],
					"properties": {
						"title": {"type": "string"},
						"month": {"type": "integer", "minimum": 1}
					}
				}
			}
		}
	}`,
	workflow.StepScaling: `{
		"type": "object",
		"required": ["phases", "risks", "metrics"],
		"properties": {
			"phases": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["name", "focus"],
					"properties": {
						"name": {"type": "string"},
						"focus": {"type": "string"}
					}
				}
			},
			"risks": {"type": "array", "items": {"type": "string"}},
			"metrics": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	workflow.StepSustainability: `{
		"type": "object",
		"required": ["impact", "practices", "longTermVision"],
		"properties": {
			"impact": {"type": "string"},
			"practices": {"type": "array", "items": {"type": "string"}},
			"longTermVision": {"type": "string"}
		}
	}`,
}

// compileSchemas parses every step schema once at construction time.
func compileSchemas() (map[string]*gojsonschema.Schema, error) {
	compiled := make(map[string]*gojsonschema.Schema, len(stepSchemas))
	for key, raw := range stepSchemas {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compile schema for step %q: %w", key, err)
		}
		compiled[key] = schema
	}
	return compiled, nil
}

// validatePayload returns nil when payload satisfies schema, otherwise an error
// listing the violations.
func validatePayload(schema *gojsonschema.Schema, payload []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("validate payload: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return &SchemaError{Violations: msgs}
}

// SchemaError lists why a model response was rejected.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("payload does not match schema: %v", e.Violations)
}
