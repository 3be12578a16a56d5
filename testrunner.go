package folio

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Amount float64 `json:"amount,omitempty"` // wheel notches
	Key    string  `json:"key,omitempty"`
	Index  int     `json:"index,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true, "click": true, "drag": true, "wheel": true,
	"key": true, "open": true, "close": true, "goto": true,
	"replay": true, "start": true, "wait": true,
}

// TestRunner sequences injected input, engine operations and screenshots
// across frames for automated runs. Attach it through RunConfig.TestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "key" {
			if _, err := parseKey(st.Key); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Game.Update.
func (r *TestRunner) step(g *Game) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if g.input.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	e := g.engine
	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "click":
		g.input.InjectClick(st.X, st.Y)
	case "drag":
		g.input.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "wheel":
		g.input.InjectWheel(st.Amount)
	case "key":
		if k, err := parseKey(st.Key); err == nil {
			g.input.InjectKey(k)
		}
	case "open":
		e.OpenHero()
	case "close":
		e.CloseHero()
	case "goto":
		if e.State().Phase == PhaseHero {
			e.GoToIndexInHero(st.Index)
		} else {
			e.GoToIndex(st.Index)
		}
	case "replay":
		e.ReplayEntry()
	case "start":
		e.Start()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && g.input.Pending() == 0 {
		r.done = true
	}
}
