package registration

import "fmt"

// Step identifies a stage of the registration scenario.
type Step int

const (
	StepLoadHome Step = iota + 1
	StepOpenRegistration
	StepFillForm
	StepSubmit
	StepVerify
)

var stepNames = map[Step]string{
	StepLoadHome:         "load homepage",
	StepOpenRegistration: "navigate to registration",
	StepFillForm:         "populate registration form",
	StepSubmit:           "submit",
	StepVerify:           "verify outcome",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// FailureKind classifies why a step failed.
type FailureKind string

const (
	// KindNavigation means a page did not reach the expected state.
	KindNavigation FailureKind = "navigation"
	// KindElement means a required element never became usable.
	KindElement FailureKind = "element"
	// KindAssertion means an expected page condition did not hold.
	KindAssertion FailureKind = "assertion"
)

// ScenarioFailure is returned when any step of a scenario fails. Cause is the
// error reported by the browser engine, unchanged.
type ScenarioFailure struct {
	Scenario string
	Step     Step
	Kind     FailureKind
	Cause    error
	// Screenshot is the failure screenshot path, empty if none was written.
	Screenshot string
}

func (f *ScenarioFailure) Error() string {
	return fmt.Sprintf("%s failed at step %d (%s): %s: %v", f.Scenario, int(f.Step), f.Step, f.Kind, f.Cause)
}

func (f *ScenarioFailure) Unwrap() error {
	return f.Cause
}
