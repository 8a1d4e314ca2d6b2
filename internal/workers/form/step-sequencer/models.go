// internal/workers/form/step-sequencer/models.go
package stepsequencer

import "visa-bot/internal/models"

type InputKind int

const (
	// InputStart opens (or re-opens) the form with an empty record.
	InputStart InputKind = iota
	// InputCancel abandons an active form, keeping collected answers.
	InputCancel
	InputText
	// InputNationality is a quick-pick button carrying a country name.
	InputNationality
	// InputUpload is a document or photo; FileRefs lists the candidate
	// references, highest resolution last.
	InputUpload
)

var inputKindNames = map[InputKind]string{
	InputStart:       "start",
	InputCancel:      "cancel",
	InputText:        "text",
	InputNationality: "nationality",
	InputUpload:      "upload",
}

func (k InputKind) String() string {
	if name, ok := inputKindNames[k]; ok {
		return name
	}
	return "unknown"
}

type Input struct {
	Kind     InputKind
	Text     string
	FileRefs []models.FileRef
}

func Start() Input  { return Input{Kind: InputStart} }
func Cancel() Input { return Input{Kind: InputCancel} }

func Text(s string) Input { return Input{Kind: InputText, Text: s} }

func Nationality(country string) Input { return Input{Kind: InputNationality, Text: country} }

func Upload(refs ...models.FileRef) Input { return Input{Kind: InputUpload, FileRefs: refs} }

// Assignment is a single field write produced by a transition.
type Assignment struct {
	Field models.Field
	Value string
}

type Reply struct {
	Text     string
	Keyboard *models.Keyboard
}

// Outcome is the effect list of one transition. When Handled is false the
// input does not apply to the current step and nothing is changed.
type Outcome struct {
	Handled    bool
	Next       models.Step
	Reset      bool
	Assignment *Assignment
	Replies    []Reply
}

var prompts = map[models.Step]string{
	models.StepName:           "1/8. Please enter your Full name:",
	models.StepDateOfBirth:    "2/8. Please enter your Date of birth (e.g., 1990-12-31):",
	models.StepNationality:    "3/8. Nationality: choose from buttons below or type your nationality.",
	models.StepPassportNumber: "4/8. Please enter your Passport number:",
	models.StepPhone:          "5/8. Please enter your Phone number (with country code):",
	models.StepEmail:          "6/8. Please enter your Email address:",
	models.StepPassportFile:   "7/8. Upload passport scan (as document or photo).",
	models.StepPhotoFile:      "8/8. Upload your digital photo (as document or photo).",
}

// Prompt returns the question asked when entering step.
func Prompt(step models.Step) string {
	return prompts[step]
}
