package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		want    Action
		wantErr error
	}{
		{name: "apply", tag: "apply", want: Apply{}},
		{name: "requirements", tag: "requirements", want: Requirements{}},
		{name: "faq", tag: "faq", want: FAQ{}},
		{name: "back to main", tag: "back_main", want: BackMain{}},
		{name: "eligible", tag: "eligible", want: Eligible{}},
		{name: "nationality hint", tag: "nat_hint", want: NationalityHint{}},
		{name: "fill form", tag: "fill_form", want: FillForm{}},
		{name: "user paid", tag: "user_paid", want: UserPaid{}},
		{name: "select nationality", tag: "set_nat:France", want: SelectNationality{Country: "France"}},
		{name: "country containing colon", tag: "set_nat:A:B", want: SelectNationality{Country: "A:B"}},
		{name: "confirm payment", tag: "admin_mark_paid:42", want: ConfirmPayment{Target: 42}},
		{name: "empty country", tag: "set_nat:", wantErr: ErrInvalidArgument},
		{name: "non numeric identity", tag: "admin_mark_paid:abc", wantErr: ErrInvalidArgument},
		{name: "missing identity", tag: "admin_mark_paid", wantErr: ErrInvalidArgument},
		{name: "argument on plain verb", tag: "apply:now", wantErr: ErrUnknownAction},
		{name: "unknown verb", tag: "teleport", wantErr: ErrUnknownAction},
		{name: "empty tag", tag: "", wantErr: ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAction(tt.tag)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAction_TagRoundTrip(t *testing.T) {
	actions := []Action{
		Apply{}, Requirements{}, FAQ{}, BackMain{}, Eligible{}, NationalityHint{},
		FillForm{}, UserPaid{}, SelectNationality{Country: "India"}, ConfirmPayment{Target: 7782365882},
	}
	for _, a := range actions {
		parsed, err := ParseAction(a.Tag())
		require.NoError(t, err, a.Tag())
		assert.Equal(t, a, parsed)
	}
}

func TestConfirmPayment_TagEmbedsIdentity(t *testing.T) {
	assert.Equal(t, "admin_mark_paid:42", ConfirmPayment{Target: 42}.Tag())
}
