package folio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "key", "key": "down"},
			{"action": "goto", "index": 2}
		]
	}`)

	runner, err := LoadTestScript(data)
	require.NoError(t, err)
	require.Len(t, runner.steps, 5)
	assert.Equal(t, "click", runner.steps[1].Action)
	assert.Equal(t, 100.0, runner.steps[1].X)
	assert.Equal(t, 200.0, runner.steps[1].Y)
	assert.Equal(t, "down", runner.steps[3].Key)
	assert.Equal(t, 2, runner.steps[4].Index)
}

func TestLoadTestScript_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":       `not json`,
		"empty":          `{"steps": []}`,
		"unknown action": `{"steps": [{"action": "teleport"}]}`,
		"unknown key":    `{"steps": [{"action": "key", "key": "f13"}]}`,
	}
	for name, data := range tests {
		_, err := LoadTestScript([]byte(data))
		assert.Error(t, err, name)
	}
}

func TestRunnerStep_GotoAndWait(t *testing.T) {
	e := readyEngine(t, 4, Options{})
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "goto", "index": 2},
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "after goto"}
	]}`))
	require.NoError(t, err)
	g := NewGame(e, RunConfig{TestRunner: runner})

	runner.step(g)
	assert.InDelta(t, 6.6, e.State().ScrollTarget, epsilon)

	// wait consumes three frames including its own.
	for i := 0; i < 3; i++ {
		runner.step(g)
		require.Empty(t, g.screenshotQueue, "wait frame %d", i)
	}
	runner.step(g)
	assert.Equal(t, []string{"after goto"}, g.screenshotQueue)
	assert.True(t, runner.Done())
}

func TestRunnerStep_ClickWaitsForInjection(t *testing.T) {
	e := readyEngine(t, 4, Options{})
	x, y := cardCenter(t, e, 0)
	runner := &TestRunner{steps: []testStep{
		{Action: "click", X: x, Y: y},
		{Action: "replay"},
	}}
	g := NewGame(e, RunConfig{TestRunner: runner})

	runner.step(g)
	require.Equal(t, 2, g.input.Pending())
	// The runner holds the next step while injections are pending.
	runner.step(g)
	require.Equal(t, 1, runner.cursor)
	drainInput(g.input)
	require.Equal(t, PhaseTransitioningToHero, e.State().Phase)

	// Replay is refused during the hero morph.
	runner.step(g)
	assert.NotEqual(t, PhaseEntry, e.State().Phase)
	assert.True(t, runner.Done())
}

func TestRunnerStep_Start(t *testing.T) {
	e := newTestEngine(t, 2, Options{DeferStart: true})
	runner := &TestRunner{steps: []testStep{{Action: "start"}}}
	g := NewGame(e, RunConfig{TestRunner: runner})

	runner.step(g)
	assert.Equal(t, EntryRunning, e.EntryState())
}
