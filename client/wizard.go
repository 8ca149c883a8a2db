package client

import (
	"context"
	"errors"
)

// SubmitStepFunc submits the payload for one wizard step. It returns the
// server's advance decision; an error keeps the wizard on the current step.
type SubmitStepFunc func(ctx context.Context, step int) (*StepResult, error)

// Wizard is the step-progression controller for the onboarding flow. Steps
// are numbered 1..total. A confirmed submission advances exactly one step,
// a failed one stays put, and back navigation is always allowed. The wizard
// is complete once the final step has been confirmed.
type Wizard struct {
	total   int
	current int
	submit  SubmitStepFunc
	notify  NotifyFunc
	done    bool
}

// NewWizard creates a controller over the given number of steps.
func NewWizard(total int, submit SubmitStepFunc, notify NotifyFunc) *Wizard {
	return &Wizard{total: total, current: 1, submit: submit, notify: notify}
}

// Resume positions the wizard after a reload: completedStep is the furthest
// confirmed step reported by the server.
func (w *Wizard) Resume(completedStep int) {
	switch {
	case completedStep >= w.total:
		w.current = w.total
		w.done = true
	case completedStep < 0:
		w.current = 1
	default:
		w.current = completedStep + 1
	}
}

// Current returns the step the wizard is on, 1-based.
func (w *Wizard) Current() int {
	return w.current
}

// Total returns the number of steps.
func (w *Wizard) Total() int {
	return w.total
}

// Completed reports whether the final step has been confirmed.
func (w *Wizard) Completed() bool {
	return w.done
}

// ErrWizardComplete is returned by Submit after the final step confirmed.
var ErrWizardComplete = errors.New("wizard already complete")

// Submit sends the current step. On a confirmed submission the wizard moves
// forward exactly once; on failure it stays on the step and surfaces the
// server message through the notify callback.
func (w *Wizard) Submit(ctx context.Context) (*StepResult, error) {
	if w.done {
		return nil, ErrWizardComplete
	}

	result, err := w.submit(ctx, w.current)
	if err != nil {
		if w.notify != nil {
			w.notify(Notification{Source: "onboarding", Message: err.Error()})
		}
		return nil, err
	}

	if result.Advance {
		if w.current == w.total {
			w.done = true
		} else {
			w.current++
		}
	}
	return result, nil
}

// Back moves one step back. It never fails; entered data is the caller's to
// keep.
func (w *Wizard) Back() {
	if w.current > 1 {
		w.current--
	}
	w.done = false
}
