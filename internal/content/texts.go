// Package content holds the fixed bot copy and the inline keyboards built
// from the configured links.
package content

const (
	StartText = "Welcome! How can we help you today?"

	ApplyText = "Please choose an option below:\n\n" +
		"• Check if your nationality is eligible for an e-visa.\n" +
		"• Fill the application form to start processing.\n\n" +
		"After submitting the form, proceed to payment to complete the request."

	ThankYouPaymentText = "✅ Thank you! Your form was submitted. To complete the process, please proceed with payment. " +
		"After payment, you will receive a PDF instruction and our team will contact you."

	RequirementsText = "📝 Visa Requirements:\n" +
		"• Valid passport\n" +
		"• Recent digital photo\n" +
		"• Travel details\n\n" +
		"Please note: processing times and additional documents may vary."

	FAQText = "❓ FAQ:\n" +
		"• How long does it take? — Usually 3–10 business days.\n" +
		"• Is the fee refundable? — Payments are processed after document check.\n" +
		"• How will I get updates? — We will contact you via Telegram or email."

	EligibleList = "Andorra, Austria, Bahrain, Belgium, Bulgaria, Cambodia, China, Croatia, Cyprus, " +
		"Czech Republic, Denmark, Estonia, Finland, France, Germany, Greece, Hungary, Iceland, " +
		"India, Indonesia, Iran, Ireland, Italy, Japan, North Korea, Kuwait, Latvia, " +
		"Liechtenstein, Lithuania, Luxembourg, Malaysia, Malta, Mexico, Monaco, Myanmar, " +
		"Netherlands, North Macedonia, Norway, Oman, Philippines, Poland, Portugal, Romania, " +
		"San Marino, Saudi Arabia, Serbia, Singapore, Slovakia, Slovenia, Spain, Sweden, " +
		"Switzerland, Taiwan, Turkey, Vatican, Vietnam."

	EligibleText = "🇷🇺 Eligible Nationalities:\n" + EligibleList

	CancelText = "Cancelled. Back to main menu."
)

// Button acknowledgement texts.
const (
	AckUnknownAction   = "Unknown action"
	AckNationalityHint = "Please type your nationality in chat."
	AckAdminOnly       = "Only admin can confirm payment."
)
