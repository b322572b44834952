package templates

import (
	"errors"
	"fmt"
	"sort"
)

// ErrTemplateNotFound is returned by Evaluate for an unregistered id.
var ErrTemplateNotFound = errors.New("template not found")

// InputType enumerates the supported template input types.
type InputType string

const (
	InputNumber  InputType = "number"
	InputBoolean InputType = "boolean"
	InputString  InputType = "string"
)

// InputField declares one typed input of a template schema.
type InputField struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        InputType `json:"type"`
	Required    bool      `json:"required"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
}

// Inputs is a validated set of template inputs.
type Inputs map[string]any

// Number returns a numeric input, or the fallback when absent.
func (in Inputs) Number(name string, fallback float64) float64 {
	switch v := in[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return fallback
	}
}

// Bool returns a boolean input, or the fallback when absent.
func (in Inputs) Bool(name string, fallback bool) bool {
	if v, ok := in[name].(bool); ok {
		return v
	}
	return fallback
}

// String returns a string input, or the fallback when absent.
func (in Inputs) String(name, fallback string) string {
	if v, ok := in[name].(string); ok {
		return v
	}
	return fallback
}

// DecisionRecommendation is the outcome of a what-if template evaluation.
type DecisionRecommendation struct {
	Proceed    bool     `json:"proceed"`
	Confidence float64  `json:"confidence"` // 0-100
	Reasoning  []string `json:"reasoning"`
	Risks      []string `json:"risks"`
	Timing     string   `json:"timing"`
	Checklist  []string `json:"checklist"`
}

// Template pairs an input schema with a pure decision function. Templates are
// invoked on demand with manually supplied inputs; they are independent of
// the ranked decision engine.
type Template struct {
	ID          string                              `json:"id"`
	Name        string                              `json:"name"`
	Description string                              `json:"description"`
	Inputs      []InputField                        `json:"inputs"`
	Evaluate    func(Inputs) DecisionRecommendation `json:"-"`
}

// Registry holds the available decision templates keyed by id.
type Registry struct {
	templates map[string]Template
}

// NewRegistry builds a registry with the built-in template library.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]Template)}
	r.Register(fungicideApplicationTemplate())
	r.Register(harvestTimingTemplate())
	r.Register(irrigationSchedulingTemplate())
	return r
}

// Register adds or replaces a template.
func (r *Registry) Register(t Template) {
	r.templates[t.ID] = t
}

// Get returns a template by id.
func (r *Registry) Get(id string) (Template, bool) {
	t, ok := r.templates[id]
	return t, ok
}

// List returns all templates sorted by id for stable output.
func (r *Registry) List() []Template {
	out := make([]Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Evaluate validates the raw inputs against the template's schema and runs
// the decision function.
func (r *Registry) Evaluate(id string, raw map[string]any) (DecisionRecommendation, error) {
	t, ok := r.templates[id]
	if !ok {
		return DecisionRecommendation{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}

	inputs, err := validateInputs(t.Inputs, raw)
	if err != nil {
		return DecisionRecommendation{}, fmt.Errorf("invalid inputs for template %s: %w", id, err)
	}

	return t.Evaluate(inputs), nil
}

func validateInputs(schema []InputField, raw map[string]any) (Inputs, error) {
	inputs := make(Inputs, len(raw))

	for _, field := range schema {
		value, present := raw[field.Name]
		if !present {
			if field.Required {
				return nil, fmt.Errorf("missing required input %q", field.Name)
			}
			continue
		}

		switch field.Type {
		case InputNumber:
			var n float64
			switch v := value.(type) {
			case float64:
				n = v
			case int:
				n = float64(v)
			default:
				return nil, fmt.Errorf("input %q must be a number, got %T", field.Name, value)
			}
			if field.Min != nil && n < *field.Min {
				return nil, fmt.Errorf("input %q below minimum %.2f", field.Name, *field.Min)
			}
			if field.Max != nil && n > *field.Max {
				return nil, fmt.Errorf("input %q above maximum %.2f", field.Name, *field.Max)
			}
			inputs[field.Name] = n
		case InputBoolean:
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("input %q must be a boolean, got %T", field.Name, value)
			}
			inputs[field.Name] = b
		case InputString:
			s, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("input %q must be a string, got %T", field.Name, value)
			}
			inputs[field.Name] = s
		default:
			return nil, fmt.Errorf("input %q has unsupported type %s", field.Name, field.Type)
		}
	}

	return inputs, nil
}

func numRange(min, max float64) (*float64, *float64) {
	return &min, &max
}
