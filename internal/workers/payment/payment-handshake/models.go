// internal/workers/payment/payment-handshake/models.go
package paymenthandshake

import (
	"fmt"
	"strings"

	"visa-bot/internal/models"
)

const (
	PathButton  = "button"
	PathCommand = "command"
)

const (
	reportAckText    = "Thanks! Our specialist will review the payment shortly."
	confirmedText    = "✅ Payment confirmed"
	completionText   = "✅ Your application has been received. Our specialist will contact you shortly. PDF guide is attached below."
	passportCaption  = "Passport scan"
	photoCaption     = "Digital photo"
	confirmedHeader  = "✅ PAYMENT CONFIRMED"
	manualHeader     = "✅ PAYMENT CONFIRMED (manual)"
	pendingSubject   = "Payment pending"
	adminOnlyCommand = "Only admin can use this command."
	markPaidUsage    = "Usage: /mark_paid <user_id>"
	badIdentityText  = "User ID must be an integer."
	noFormCommand    = "No form data found for this user."
	doneText         = "Done. User has been notified and files were sent to admin."

	// missingValue stands in for answers the applicant never gave.
	missingValue = "-"
)

// summaryFields are the text answers listed in admin summaries, in order.
var summaryFields = []struct {
	label string
	field models.Field
}{
	{"Full name", models.FieldFullName},
	{"Date of birth", models.FieldDateOfBirth},
	{"Nationality", models.FieldNationality},
	{"Passport number", models.FieldPassportNumber},
	{"Phone", models.FieldPhone},
	{"Email", models.FieldEmail},
}

func fieldLines(rec *models.FormRecord) string {
	var b strings.Builder
	for _, f := range summaryFields {
		v, ok := rec.Get(f.field)
		if !ok {
			v = missingValue
		}
		fmt.Fprintf(&b, "%s: %s\n", f.label, v)
	}
	return b.String()
}

// PendingSummary is the admin notice sent when an applicant reports payment.
// rec may be nil.
func PendingSummary(applicant models.Sender, rec *models.FormRecord) string {
	name := applicant.Name
	if name == "" {
		name = missingValue
	}
	return fmt.Sprintf("⏳ Payment pending\nUser: %s (ID: %s)\n\n", name, applicant.ID) + fieldLines(rec)
}

// ConfirmedSummary is the full record sent to the admin on confirmation.
func ConfirmedSummary(header string, target models.Identity, rec *models.FormRecord) string {
	return fmt.Sprintf("%s\n\nUser ID: %s\n", header, target) + fieldLines(rec)
}

func noFormForUser(target models.Identity) string {
	return fmt.Sprintf("No form data found for user %s.", target)
}

func notifyFailedText(err error) string {
	return fmt.Sprintf("Failed to notify the user: %v", err)
}

// hasData mirrors the lookup rule for confirmations: a record with no
// collected answers counts as missing.
func hasData(rec *models.FormRecord) bool {
	return rec != nil && len(rec.Answers) > 0
}
