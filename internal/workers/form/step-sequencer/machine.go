// internal/workers/form/step-sequencer/machine.go
package stepsequencer

import (
	"strings"

	"visa-bot/internal/content"
	"visa-bot/internal/models"
)

// Machine is the form state machine. Transition performs no I/O.
type Machine struct {
	catalog     *content.Catalog
	rejectBlank bool
}

func NewMachine(catalog *content.Catalog, rejectBlank bool) *Machine {
	return &Machine{catalog: catalog, rejectBlank: rejectBlank}
}

func (m *Machine) Transition(step models.Step, in Input) Outcome {
	switch in.Kind {
	case InputStart:
		out := m.enter(models.StepName)
		out.Reset = true
		return out

	case InputCancel:
		if !step.Active() {
			return ignored(step)
		}
		return Outcome{
			Handled: true,
			Next:    models.StepInactive,
			Replies: []Reply{{Text: content.CancelText, Keyboard: m.catalog.MainMenu()}},
		}

	case InputText:
		if !step.Active() {
			return ignored(step)
		}
		if step.AcceptsFile() {
			return m.reprompt(step)
		}
		answer := strings.TrimSpace(in.Text)
		if answer == "" && m.rejectBlank {
			return m.reprompt(step)
		}
		return m.advance(step, answer)

	case InputNationality:
		if step != models.StepNationality {
			return ignored(step)
		}
		return m.advance(step, in.Text)

	case InputUpload:
		if !step.AcceptsFile() {
			return ignored(step)
		}
		ref, ok := bestRef(in.FileRefs)
		if !ok {
			return m.reprompt(step)
		}
		return m.advance(step, string(ref))
	}

	return ignored(step)
}

// advance stores value for step and moves to the next one.
func (m *Machine) advance(step models.Step, value string) Outcome {
	field, _ := step.Field()
	out := m.enter(step.Next())
	out.Assignment = &Assignment{Field: field, Value: value}
	return out
}

// enter prompts for step, or shows the payment block once the form is done.
func (m *Machine) enter(step models.Step) Outcome {
	out := Outcome{Handled: true, Next: step}
	if !step.Active() {
		out.Replies = []Reply{{Text: content.ThankYouPaymentText, Keyboard: m.catalog.Payment()}}
		return out
	}
	out.Replies = []Reply{m.prompt(step)}
	return out
}

func (m *Machine) reprompt(step models.Step) Outcome {
	return Outcome{Handled: true, Next: step, Replies: []Reply{m.prompt(step)}}
}

func (m *Machine) prompt(step models.Step) Reply {
	r := Reply{Text: Prompt(step)}
	if step == models.StepNationality {
		r.Keyboard = m.catalog.Nationality()
	}
	return r
}

func ignored(step models.Step) Outcome {
	return Outcome{Next: step}
}

// bestRef picks the highest-resolution usable reference (the last non-empty).
func bestRef(refs []models.FileRef) (models.FileRef, bool) {
	for i := len(refs) - 1; i >= 0; i-- {
		if refs[i] != "" {
			return refs[i], true
		}
	}
	return "", false
}
