// Package notifiertest provides an in-memory Notifier for tests.
package notifiertest

import (
	"context"
	"sync"

	"visa-bot/internal/models"
	"visa-bot/internal/notifier"
)

// Call is one recorded Notifier invocation, failed or not.
type Call struct {
	Op         string
	To         models.Identity
	MessageID  int
	Text       string
	Keyboard   *models.Keyboard
	FileRef    models.FileRef
	Caption    string
	CallbackID string
	Alert      bool
	Err        error
}

// Recorder records every call. Use Fail to inject errors per operation,
// optionally restricted to one recipient.
type Recorder struct {
	mu       sync.Mutex
	calls    []Call
	failures []failure
}

type failure struct {
	op  string
	to  *models.Identity
	err error
}

var _ notifier.Notifier = (*Recorder)(nil)

func New() *Recorder { return &Recorder{} }

// Fail makes every call of op return err.
func (r *Recorder) Fail(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, failure{op: op, err: err})
}

// FailTo makes calls of op addressed to id return err.
func (r *Recorder) FailTo(op string, id models.Identity, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, failure{op: op, to: &id, err: err})
}

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.failures {
		if f.op == c.Op && (f.to == nil || *f.to == c.To) {
			c.Err = f.err
			break
		}
	}
	r.calls = append(r.calls, c)
	return c.Err
}

func (r *Recorder) SendText(_ context.Context, to models.Identity, text string, kb *models.Keyboard) error {
	return r.record(Call{Op: notifier.OpSendText, To: to, Text: text, Keyboard: kb})
}

func (r *Recorder) EditText(_ context.Context, origin models.Origin, text string, kb *models.Keyboard) error {
	return r.record(Call{Op: notifier.OpEditText, To: origin.Chat, MessageID: origin.MessageID, Text: text, Keyboard: kb})
}

func (r *Recorder) ForwardDocument(_ context.Context, to models.Identity, ref models.FileRef, caption string) error {
	return r.record(Call{Op: notifier.OpForwardDocument, To: to, FileRef: ref, Caption: caption})
}

func (r *Recorder) ForwardPhoto(_ context.Context, to models.Identity, ref models.FileRef, caption string) error {
	return r.record(Call{Op: notifier.OpForwardPhoto, To: to, FileRef: ref, Caption: caption})
}

func (r *Recorder) Acknowledge(_ context.Context, callbackID, text string, alert bool) error {
	return r.record(Call{Op: notifier.OpAcknowledge, CallbackID: callbackID, Text: text, Alert: alert})
}

// Calls returns a snapshot of every recorded call.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Delivered returns the successful non-ack calls addressed to id.
func (r *Recorder) Delivered(id models.Identity) []Call {
	var out []Call
	for _, c := range r.Calls() {
		if c.Op != notifier.OpAcknowledge && c.To == id && c.Err == nil {
			out = append(out, c)
		}
	}
	return out
}

// Acks returns the recorded acknowledgements.
func (r *Recorder) Acks() []Call {
	var out []Call
	for _, c := range r.Calls() {
		if c.Op == notifier.OpAcknowledge {
			out = append(out, c)
		}
	}
	return out
}

// Last returns the most recent successful call addressed to id.
func (r *Recorder) Last(id models.Identity) (Call, bool) {
	d := r.Delivered(id)
	if len(d) == 0 {
		return Call{}, false
	}
	return d[len(d)-1], true
}

// Reset drops recorded calls but keeps injected failures.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
