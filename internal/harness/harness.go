package harness

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/almanac/internal/event"
	"github.com/roach88/almanac/internal/store"
	"github.com/roach88/almanac/internal/testutil"
)

// harnessEpoch pins the deterministic clock. Every scenario starts here, so
// event ids depend only on step order.
var harnessEpoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// TraceEvent records one executed step for golden comparison.
type TraceEvent struct {
	Op    string `json:"op"`
	Title string `json:"title,omitempty"`
	Date  string `json:"date,omitempty"`
	ID    int64  `json:"id,omitempty"`
	Err   string `json:"err,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every step behaved as declared and
	// every assertion held.
	Pass bool `json:"pass"`

	// Trace contains the executed steps in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// runner tracks the live objects of one scenario execution.
type runner struct {
	store  *store.Store
	bridge *testutil.ScriptedBridge
	clock  *testutil.FixedClock

	// ids maps event titles to their generated ids. Scenarios reference
	// events by title, so titles must stay unique within a scenario.
	ids map[string]int64
}

// Run executes a scenario against a fresh store and evaluates its
// assertions. Each scenario gets its own bridge and clock for isolation.
func Run(scenario *Scenario) (*Result, error) {
	r := &runner{
		bridge: testutil.NewScriptedBridge(),
		clock:  testutil.NewFixedClock(harnessEpoch),
		ids:    make(map[string]int64),
	}
	r.store = store.New(r.bridge, store.WithClock(r.clock))
	if err := r.store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	r.store.EnableAutosave()

	result := NewResult()

	for i, step := range scenario.Setup {
		ev, err := r.execute(step)
		result.Trace = append(result.Trace, ev)
		if err != nil {
			return nil, fmt.Errorf("setup[%d] %s: %w", i, step.Op, err)
		}
	}

	for i, step := range scenario.Flow {
		ev, err := r.execute(step)
		if step.Expect != nil {
			switch {
			case err == nil:
				result.AddError(fmt.Sprintf("flow[%d] %s: expected error containing %q, got success", i, step.Op, step.Expect.Error))
			case !strings.Contains(err.Error(), step.Expect.Error):
				result.AddError(fmt.Sprintf("flow[%d] %s: expected error containing %q, got %q", i, step.Op, step.Expect.Error, err.Error()))
			default:
				ev.Err = err.Error()
			}
		} else if err != nil {
			result.AddError(fmt.Sprintf("flow[%d] %s: unexpected error: %v", i, step.Op, err))
		}
		result.Trace = append(result.Trace, ev)
	}

	for _, msg := range EvaluateAssertions(r.store, r.bridge, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// execute runs one step and returns its trace event. The event carries the
// step's observable outcome; the error is reported separately so expect
// clauses can consume it.
func (r *runner) execute(step Step) (TraceEvent, error) {
	ev := TraceEvent{Op: step.Op, Title: step.Title, Date: step.Date}

	switch step.Op {
	case OpAdd:
		date, err := time.Parse(stepDayLayout, step.Date)
		if err != nil {
			return ev, err
		}
		// Distinct instants give distinct ids.
		r.clock.Tick()
		added, err := r.store.Add(event.NewEventInput{Title: step.Title, Desc: step.Desc, Date: date})
		if err != nil {
			return ev, err
		}
		r.ids[added.Title] = added.ID
		ev.Title = added.Title
		ev.ID = added.ID
		return ev, nil

	case OpEdit:
		id, ok := r.ids[step.Title]
		if !ok {
			return ev, fmt.Errorf("no event titled %q", step.Title)
		}
		current, ok := r.store.Get(id)
		if !ok {
			return ev, fmt.Errorf("event %q (id %d) not in store", step.Title, id)
		}
		if step.NewTitle != nil {
			current.Title = *step.NewTitle
		}
		if step.NewDesc != nil {
			current.Desc = *step.NewDesc
		}
		if step.NewDate != nil {
			date, err := time.Parse(stepDayLayout, *step.NewDate)
			if err != nil {
				return ev, err
			}
			current.Date = date
			ev.Date = *step.NewDate
		}
		if err := r.store.Update(current); err != nil {
			return ev, err
		}
		if step.NewTitle != nil && *step.NewTitle != step.Title {
			delete(r.ids, step.Title)
			r.ids[current.Title] = id
		}
		ev.ID = id
		return ev, nil

	case OpRemove:
		id, ok := r.ids[step.Title]
		if !ok {
			return ev, fmt.Errorf("no event titled %q", step.Title)
		}
		if err := r.store.Delete(id); err != nil {
			return ev, err
		}
		delete(r.ids, step.Title)
		ev.ID = id
		return ev, nil

	case OpSave:
		return ev, r.store.Save()

	default:
		return ev, fmt.Errorf("unknown op %q", step.Op)
	}
}
