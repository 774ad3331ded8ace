package entities

import (
	"fmt"
	"time"
)

// Step is a state of a single deployment attempt.
type Step string

const (
	StepIdle                Step = "idle"
	StepCreatingRepo        Step = "creating_repo"
	StepUploadingFiles      Step = "uploading_files"
	StepDeployingToPlatform Step = "deploying_to_platform"
	StepSucceeded           Step = "succeeded"
	StepFailed              Step = "failed"
)

//nolint:gochecknoglobals // transition table
var nextStep = map[Step]Step{
	StepIdle:                StepCreatingRepo,
	StepCreatingRepo:        StepUploadingFiles,
	StepUploadingFiles:      StepDeployingToPlatform,
	StepDeployingToPlatform: StepSucceeded,
}

// Terminal reports whether no further transition is possible.
func (s Step) Terminal() bool { return s == StepSucceeded || s == StepFailed }

// Attempt tracks one pass through the deployment pipeline. It only moves
// forward; Failed is reachable from every non-terminal step.
type Attempt struct {
	ID         string
	Step       Step
	FailedStep Step
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewAttempt starts an attempt in the Idle step.
func NewAttempt(id string, now time.Time) *Attempt {
	return &Attempt{ID: id, Step: StepIdle, StartedAt: now}
}

// Advance moves to the next step. Skipping or going back is an error.
func (a *Attempt) Advance(to Step, now time.Time) error {
	if a.Step.Terminal() {
		return fmt.Errorf("attempt %s already finished in step %q", a.ID, a.Step)
	}
	if nextStep[a.Step] != to {
		return fmt.Errorf("attempt %s cannot move from %q to %q", a.ID, a.Step, to)
	}
	a.Step = to
	if to.Terminal() {
		a.FinishedAt = now
	}
	return nil
}

// Fail records the step that failed and ends the attempt.
func (a *Attempt) Fail(err error, now time.Time) {
	if a.Step.Terminal() {
		return
	}
	a.FailedStep = a.Step
	a.Step = StepFailed
	a.Err = err
	a.FinishedAt = now
}
