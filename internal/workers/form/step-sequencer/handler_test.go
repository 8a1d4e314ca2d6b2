package stepsequencer

import (
	"context"
	"errors"
	"testing"

	apperrors "visa-bot/internal/common/errors"
	"visa-bot/internal/common/logger"
	"visa-bot/internal/content"
	"visa-bot/internal/models"
	"visa-bot/internal/notifier"
	"visa-bot/internal/notifier/notifiertest"
	"visa-bot/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

const applicant models.Identity = 42

func createTestConfig() *Config {
	return &Config{}
}

func newTestHandler(t *testing.T) (*Handler, *store.MemoryStore, *notifiertest.Recorder) {
	t.Helper()
	st := store.NewMemoryStore()
	rec := notifiertest.New()
	return NewHandler(createTestConfig(), st, rec, testCatalog(), logger.NewTestLogger(t)), st, rec
}

func chat() models.Origin { return models.Origin{Chat: applicant} }

func button() models.Origin { return models.Origin{Chat: applicant, MessageID: 100} }

func mustHandle(t *testing.T, h *Handler, origin models.Origin, in Input) {
	t.Helper()
	handled, err := h.Handle(context.Background(), origin, in)
	require.NoError(t, err)
	require.True(t, handled, "input %s was ignored", in.Kind)
}

func fillForm(t *testing.T, h *Handler) {
	t.Helper()
	mustHandle(t, h, button(), Start())
	mustHandle(t, h, chat(), Text("Jane Doe"))
	mustHandle(t, h, chat(), Text("1990-01-01"))
	mustHandle(t, h, button(), Nationality("India"))
	mustHandle(t, h, chat(), Text("P1234567"))
	mustHandle(t, h, chat(), Text("+1-555-0100"))
	mustHandle(t, h, chat(), Text("jane@x.com"))
	mustHandle(t, h, chat(), Upload("D1"))
	mustHandle(t, h, chat(), Upload("P0-small", "P1"))
}

func stored(t *testing.T, st store.Store) *models.FormRecord {
	t.Helper()
	rec, err := st.Get(context.Background(), applicant)
	require.NoError(t, err)
	return rec
}

// ==========================
// Full questionnaire
// ==========================

func TestHandle_CompleteForm(t *testing.T) {
	h, st, rec := newTestHandler(t)

	fillForm(t, h)

	got := stored(t, st)
	assert.Equal(t, models.StepInactive, got.Step)
	assert.True(t, got.Complete())
	assert.Equal(t, map[models.Field]string{
		models.FieldFullName:        "Jane Doe",
		models.FieldDateOfBirth:     "1990-01-01",
		models.FieldNationality:     "India",
		models.FieldPassportNumber:  "P1234567",
		models.FieldPhone:           "+1-555-0100",
		models.FieldEmail:           "jane@x.com",
		models.FieldPassportFileRef: "D1",
		models.FieldPhotoFileRef:    "P1",
	}, got.Answers)

	last, ok := rec.Last(applicant)
	require.True(t, ok)
	assert.Equal(t, content.ThankYouPaymentText, last.Text)
	assert.Equal(t, notifier.OpSendText, last.Op)
}

func TestHandle_ButtonRepliesEditInPlace(t *testing.T) {
	h, _, rec := newTestHandler(t)

	mustHandle(t, h, button(), Start())

	calls := rec.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, notifier.OpEditText, calls[0].Op)
	assert.Equal(t, 100, calls[0].MessageID)
	assert.Equal(t, Prompt(models.StepName), calls[0].Text)
}

func TestHandle_EditFailureFallsBackToSend(t *testing.T) {
	h, _, rec := newTestHandler(t)
	rec.Fail(notifier.OpEditText, errors.New("message is not modified"))

	mustHandle(t, h, button(), Start())

	last, ok := rec.Last(applicant)
	require.True(t, ok)
	assert.Equal(t, notifier.OpSendText, last.Op)
	assert.Equal(t, Prompt(models.StepName), last.Text)
}

// ==========================
// Restart and cancel
// ==========================

func TestHandle_RestartDiscardsAnswers(t *testing.T) {
	for _, at := range models.FormSteps {
		t.Run(at.String(), func(t *testing.T) {
			h, st, _ := newTestHandler(t)
			mustHandle(t, h, button(), Start())
			mustHandle(t, h, chat(), Text("Jane Doe"))

			// push an arbitrary partial record at the step under test
			partial := stored(t, st)
			partial.Step = at
			require.NoError(t, st.Set(context.Background(), partial))

			mustHandle(t, h, button(), Start())

			got := stored(t, st)
			assert.Equal(t, models.StepName, got.Step)
			assert.Empty(t, got.Answers)
		})
	}
}

func TestHandle_CancelKeepsAnswers(t *testing.T) {
	h, st, rec := newTestHandler(t)
	mustHandle(t, h, button(), Start())
	mustHandle(t, h, chat(), Text("Jane Doe"))
	mustHandle(t, h, chat(), Text("1990-01-01"))

	mustHandle(t, h, chat(), Cancel())

	got := stored(t, st)
	assert.Equal(t, models.StepInactive, got.Step)
	assert.Equal(t, "Jane Doe", got.Value(models.FieldFullName))
	assert.Equal(t, "1990-01-01", got.Value(models.FieldDateOfBirth))

	last, _ := rec.Last(applicant)
	assert.Equal(t, content.CancelText, last.Text)

	// the form no longer consumes text
	handled, err := h.Handle(context.Background(), chat(), Text("France"))
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestHandle_CancelWithoutSession(t *testing.T) {
	h, _, rec := newTestHandler(t)

	handled, err := h.Handle(context.Background(), chat(), Cancel())
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Empty(t, rec.Calls())
}

// ==========================
// File steps
// ==========================

func TestHandle_FileStepRetryIsIdempotent(t *testing.T) {
	h, st, rec := newTestHandler(t)
	st.Set(context.Background(), &models.FormRecord{Identity: applicant, Step: models.StepPassportFile, Answers: map[models.Field]string{}})

	mustHandle(t, h, chat(), Text("not a file"))
	mustHandle(t, h, chat(), Upload())

	assert.Equal(t, models.StepPassportFile, stored(t, st).Step)
	delivered := rec.Delivered(applicant)
	require.Len(t, delivered, 2)
	assert.Equal(t, Prompt(models.StepPassportFile), delivered[0].Text)
	assert.Equal(t, delivered[0].Text, delivered[1].Text)
}

func TestHandle_NationalityBothPaths(t *testing.T) {
	for name, in := range map[string]Input{
		"typed":  Text("France"),
		"button": Nationality("France"),
	} {
		t.Run(name, func(t *testing.T) {
			h, st, _ := newTestHandler(t)
			st.Set(context.Background(), &models.FormRecord{Identity: applicant, Step: models.StepNationality, Answers: map[models.Field]string{
				models.FieldFullName:    "Jane Doe",
				models.FieldDateOfBirth: "1990-01-01",
			}})

			mustHandle(t, h, button(), in)

			got := stored(t, st)
			assert.Equal(t, "France", got.Value(models.FieldNationality))
			assert.Equal(t, models.StepPassportNumber, got.Step)
		})
	}
}

// ==========================
// Failures
// ==========================

type failingStore struct {
	store.Store
	err error
}

func (f failingStore) Get(context.Context, models.Identity) (*models.FormRecord, error) {
	return nil, f.err
}

func TestHandle_StoreFailure(t *testing.T) {
	rec := notifiertest.New()
	boom := apperrors.NewStoreUnavailableError(errors.New("dial tcp: refused"))
	h := NewHandler(createTestConfig(), failingStore{Store: store.NewMemoryStore(), err: boom}, rec, testCatalog(), logger.NewNoOpLogger())

	_, err := h.Handle(context.Background(), chat(), Text("Jane"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStoreUnavailable))
	assert.Empty(t, rec.Calls())
}

func TestHandle_PromptDeliveryFailureKeepsState(t *testing.T) {
	h, st, rec := newTestHandler(t)
	mustHandle(t, h, button(), Start())
	rec.Fail(notifier.OpSendText, errors.New("Forbidden: bot was blocked by the user"))

	handled, err := h.Handle(context.Background(), chat(), Text("Jane Doe"))
	assert.True(t, handled)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDeliveryFailed))

	// the answer was stored before the prompt went out
	got := stored(t, st)
	assert.Equal(t, models.StepDateOfBirth, got.Step)
	assert.Equal(t, "Jane Doe", got.Value(models.FieldFullName))
}

func TestStep(t *testing.T) {
	h, _, _ := newTestHandler(t)
	ctx := context.Background()

	step, err := h.Step(ctx, applicant)
	require.NoError(t, err)
	assert.Equal(t, models.StepInactive, step)

	mustHandle(t, h, button(), Start())
	step, err = h.Step(ctx, applicant)
	require.NoError(t, err)
	assert.Equal(t, models.StepName, step)
}
