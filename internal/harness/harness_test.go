package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", name))
	require.NoError(t, err)
	return scenario
}

func TestRun_BasicCRUD(t *testing.T) {
	scenario := loadTestScenario(t, "basic_crud.yaml")

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Len(t, result.Trace, 4)
	assert.Equal(t, OpAdd, result.Trace[0].Op)
	assert.Equal(t, int64(1709294400001), result.Trace[0].ID)
	assert.Equal(t, int64(1709294400002), result.Trace[1].ID)
}

func TestRun_BlankTitleRejected(t *testing.T) {
	scenario := loadTestScenario(t, "blank_title_rejected.yaml")

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 1)
	assert.Contains(t, result.Trace[0].Err, "EMPTY_TITLE")
}

func TestRun_OrderPreserved(t *testing.T) {
	scenario := loadTestScenario(t, "order_preserved.yaml")

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_ExpectedErrorThatSucceedsFails(t *testing.T) {
	scenario := &Scenario{
		Name:        "expect-mismatch",
		Description: "an expect clause on a succeeding step must fail the scenario",
		Flow: []Step{
			{Op: OpAdd, Title: "Fine", Date: "2026-09-15", Expect: &ExpectClause{Error: "EMPTY_TITLE"}},
		},
		Assertions: []Assertion{{Type: AssertEventCount, Count: 1}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "got success")
}

func TestRun_UnknownTitleInFlowFailsScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "unknown-title",
		Description: "removing an event that never existed is a scenario bug",
		Flow: []Step{
			{Op: OpRemove, Title: "Ghost"},
		},
		Assertions: []Assertion{{Type: AssertEventCount, Count: 0}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "Ghost")
}

func TestRun_FailingAssertionReported(t *testing.T) {
	scenario := &Scenario{
		Name:        "assertion-miss",
		Description: "a wrong expected count shows up in errors",
		Flow: []Step{
			{Op: OpAdd, Title: "Only one", Date: "2026-09-15"},
		},
		Assertions: []Assertion{{Type: AssertEventCount, Count: 2}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "expected 2 events, got 1")
}

func TestRun_EditRenamesLookupKey(t *testing.T) {
	newTitle := "Renamed"
	scenario := &Scenario{
		Name:        "rename",
		Description: "after a rename, later steps reference the new title",
		Flow: []Step{
			{Op: OpAdd, Title: "Original", Date: "2026-09-15"},
			{Op: OpEdit, Title: "Original", NewTitle: &newTitle},
			{Op: OpRemove, Title: "Renamed"},
		},
		Assertions: []Assertion{{Type: AssertEventCount, Count: 0}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunWithGolden_BasicCRUD(t *testing.T) {
	scenario := loadTestScenario(t, "basic_crud.yaml")
	require.NoError(t, RunWithGolden(t, scenario))
}
