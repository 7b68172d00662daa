package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Step operation names.
const (
	OpAdd    = "add"
	OpEdit   = "edit"
	OpRemove = "remove"
	OpSave   = "save"
)

// Scenario defines a calendar test scenario: a sequence of operations
// against a fresh store, followed by assertions on the outcome.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Setup contains operations run before the main flow. Setup operations
	// must succeed; a failure aborts the scenario.
	Setup []Step `yaml:"setup,omitempty"`

	// Flow contains the main operations. Steps may carry an expect clause
	// for operations that should be rejected.
	Flow []Step `yaml:"flow"`

	// Assertions validate the final collection and persisted payload.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is a single operation. Events are referenced by title: adds register
// the title, edits and removes look it up.
type Step struct {
	// Op is one of "add", "edit", "remove", "save".
	Op string `yaml:"op"`

	// Title names the event this step targets.
	Title string `yaml:"title,omitempty"`

	// Desc and Date supply fields for add.
	Desc string `yaml:"desc,omitempty"`
	Date string `yaml:"date,omitempty"`

	// NewTitle, NewDesc, NewDate supply replacement fields for edit.
	// Omitted fields keep their stored values.
	NewTitle *string `yaml:"new_title,omitempty"`
	NewDesc  *string `yaml:"new_desc,omitempty"`
	NewDate  *string `yaml:"new_date,omitempty"`

	// Expect, when set, marks a step whose operation should be rejected.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies an expected rejection.
type ExpectClause struct {
	// Error is a substring the operation's error must contain.
	Error string `yaml:"error"`
}

// Assertion validates the final state.
type Assertion struct {
	// Type specifies the assertion:
	// - "day_events": the events on Date are exactly Titles, in order
	// - "collection_order": the whole collection is exactly Titles, in order
	// - "event_count": the collection holds Count events
	// - "write_count": the bridge saw exactly Count writes
	// - "persisted_round_trip": decoding the persisted payload reproduces
	//   the in-memory collection
	Type string `yaml:"type"`

	// Date is the day under test (day_events).
	Date string `yaml:"date,omitempty"`

	// Titles are the expected titles in order (day_events, collection_order).
	Titles []string `yaml:"titles,omitempty"`

	// Count is the expected number (event_count, write_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertDayEvents          = "day_events"
	AssertCollectionOrder    = "collection_order"
	AssertEventCount         = "event_count"
	AssertWriteCount         = "write_count"
	AssertPersistedRoundTrip = "persisted_round_trip"
)

const stepDayLayout = "2006-01-02"

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so typos fail loudly instead of silently validating nothing.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Setup {
		if err := validateStep(&step); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
		if step.Expect != nil {
			return fmt.Errorf("setup[%d]: expect is not allowed in setup", i)
		}
	}
	for i, step := range s.Flow {
		if err := validateStep(&step); err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(&a); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}
	return nil
}

func validateStep(step *Step) error {
	switch step.Op {
	case OpAdd:
		if step.Date == "" {
			return fmt.Errorf("date is required for add")
		}
		if _, err := time.Parse(stepDayLayout, step.Date); err != nil {
			return fmt.Errorf("invalid date %q: %w", step.Date, err)
		}
	case OpEdit:
		if step.Title == "" {
			return fmt.Errorf("title is required for edit")
		}
		if step.NewDate != nil {
			if _, err := time.Parse(stepDayLayout, *step.NewDate); err != nil {
				return fmt.Errorf("invalid new_date %q: %w", *step.NewDate, err)
			}
		}
	case OpRemove:
		if step.Title == "" {
			return fmt.Errorf("title is required for remove")
		}
	case OpSave:
	case "":
		return fmt.Errorf("op is required")
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}

	if step.Expect != nil && step.Expect.Error == "" {
		return fmt.Errorf("expect.error is required")
	}
	return nil
}

func validateAssertion(a *Assertion) error {
	switch a.Type {
	case AssertDayEvents:
		if a.Date == "" {
			return fmt.Errorf("date is required for day_events")
		}
		if _, err := time.Parse(stepDayLayout, a.Date); err != nil {
			return fmt.Errorf("invalid date %q: %w", a.Date, err)
		}
	case AssertCollectionOrder:
		if len(a.Titles) == 0 {
			return fmt.Errorf("titles list is required for collection_order")
		}
	case AssertEventCount, AssertWriteCount:
		if a.Count < 0 {
			return fmt.Errorf("count must be non-negative")
		}
	case AssertPersistedRoundTrip:
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
