package liquid

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScript is returned by LoadTestScript for a script with no steps.
var ErrEmptyScript = errors.New("no steps")

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Value  float64 `json:"value,omitempty"`
	Frames int     `json:"frames,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"enter":      true,
	"leave":      true,
	"move":       true,
	"wait":       true,
	"screenshot": true,
	"blend":      true,
	"path":       true,
}

// TestRunner sequences injected pointer events and screenshots across
// frames for automated visual testing. Attach to a Stage via SetTestRunner.
//
// Actions:
//
//	{"action": "enter"}                       pointer enters the region
//	{"action": "leave"}                       pointer disappears
//	{"action": "move", "x": 10, "y": 20}      pointer sample at (x, y)
//	{"action": "wait", "frames": 30}          idle for N frames
//	{"action": "screenshot", "label": "mid"}  capture the frame
//	{"action": "blend", "value": 0.5}         jump the blend value
//	{"action": "path", "fromX": 0, "fromY": 0, "toX": 50, "toY": 50, "frames": 10}
//	                                          pointer moves along a line
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Stage via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", ErrEmptyScript)
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the stage. While attached, real
// pointer input is ignored. With exitOnDone, Update returns
// ebiten.Termination once the script has finished and its screenshots are
// written.
func (s *Stage) SetTestRunner(runner *TestRunner, exitOnDone bool) {
	s.testRunner = runner
	s.exitOnDone = exitOnDone
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Stage.Update.
func (r *TestRunner) step(s *Stage) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
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

	switch st.Action {
	case "enter":
		s.InjectEnter()
	case "leave":
		s.InjectLeave()
	case "move":
		s.InjectMove(st.X, st.Y)
	case "screenshot":
		s.Screenshot(st.Label)
	case "blend":
		s.transition.Set(st.Value)
	case "path":
		s.InjectPath(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
