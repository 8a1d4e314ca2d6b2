package models

import (
	"errors"
	"fmt"
	"strings"
)

// Action tag verbs. Tags are "verb" or "verb:argument", split on the first ':'.
const (
	TagApply          = "apply"
	TagRequirements   = "requirements"
	TagFAQ            = "faq"
	TagBackMain       = "back_main"
	TagEligible       = "eligible"
	TagNationalityTip = "nat_hint"
	TagFillForm       = "fill_form"
	TagSetNationality = "set_nat"
	TagUserPaid       = "user_paid"
	TagAdminMarkPaid  = "admin_mark_paid"
)

var (
	ErrUnknownAction   = errors.New("unknown action")
	ErrInvalidArgument = errors.New("invalid action argument")
)

// Action is a decoded button action.
type Action interface {
	Tag() string
}

type (
	Apply           struct{}
	Requirements    struct{}
	FAQ             struct{}
	BackMain        struct{}
	Eligible        struct{}
	NationalityHint struct{}
	FillForm        struct{}
	UserPaid        struct{}

	SelectNationality struct {
		Country string
	}

	ConfirmPayment struct {
		Target Identity
	}
)

func (Apply) Tag() string           { return TagApply }
func (Requirements) Tag() string    { return TagRequirements }
func (FAQ) Tag() string             { return TagFAQ }
func (BackMain) Tag() string        { return TagBackMain }
func (Eligible) Tag() string        { return TagEligible }
func (NationalityHint) Tag() string { return TagNationalityTip }
func (FillForm) Tag() string        { return TagFillForm }
func (UserPaid) Tag() string        { return TagUserPaid }

func (a SelectNationality) Tag() string {
	return TagSetNationality + ":" + a.Country
}

func (a ConfirmPayment) Tag() string {
	return TagAdminMarkPaid + ":" + a.Target.String()
}

// ParseAction decodes a raw action tag. Unrecognized verbs return
// ErrUnknownAction; malformed arguments return ErrInvalidArgument.
func ParseAction(tag string) (Action, error) {
	verb, arg, hasArg := strings.Cut(tag, ":")

	if !hasArg {
		switch verb {
		case TagApply:
			return Apply{}, nil
		case TagRequirements:
			return Requirements{}, nil
		case TagFAQ:
			return FAQ{}, nil
		case TagBackMain:
			return BackMain{}, nil
		case TagEligible:
			return Eligible{}, nil
		case TagNationalityTip:
			return NationalityHint{}, nil
		case TagFillForm:
			return FillForm{}, nil
		case TagUserPaid:
			return UserPaid{}, nil
		}
	}

	switch verb {
	case TagSetNationality:
		if !hasArg || arg == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidArgument, tag)
		}
		return SelectNationality{Country: arg}, nil
	case TagAdminMarkPaid:
		id, err := ParseIdentity(arg)
		if !hasArg || err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidArgument, tag)
		}
		return ConfirmPayment{Target: id}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, tag)
}
