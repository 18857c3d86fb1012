// Package wizard is the step machine behind the registration form. Steps are
// plain integers 1..TotalSteps; statuses are derived from the current step,
// never stored.
package wizard

type Status string

const (
	Complete   Status = "complete"
	Current    Status = "current"
	Incomplete Status = "incomplete"
)

const TotalSteps = 4

var labels = [TotalSteps]string{
	"Taxpayer Info",
	"Business Info",
	"Requirements",
	"Undertaking",
}

type Step struct {
	Label      string `json:"label"`
	StepNumber int    `json:"stepNumber"`
	Status     Status `json:"status"`
}

// Steps derives the status of every step from the current one. Exactly one
// step is current; everything before it is complete, everything after it
// incomplete. "Complete" means visited, not validated.
func Steps(current int) []Step {
	current = clamp(current)

	steps := make([]Step, TotalSteps)
	for i := range steps {
		n := i + 1
		status := Incomplete
		switch {
		case n < current:
			status = Complete
		case n == current:
			status = Current
		}
		steps[i] = Step{Label: labels[i], StepNumber: n, Status: status}
	}
	return steps
}

// Next advances by one step, staying put on the last one.
func Next(current int) int {
	return clamp(current + 1)
}

// Prev goes back one step, staying put on the first one.
func Prev(current int) int {
	return clamp(current - 1)
}

// IsFinal reports whether the submit action is available.
func IsFinal(current int) bool {
	return clamp(current) == TotalSteps
}

func clamp(step int) int {
	if step < 1 {
		return 1
	}
	if step > TotalSteps {
		return TotalSteps
	}
	return step
}
