package models

// Step is the per-identity position in the application form. The zero value
// is StepInactive, which is both the initial and the terminal state.
type Step int

const (
	StepInactive Step = iota
	StepName
	StepDateOfBirth
	StepNationality
	StepPassportNumber
	StepPhone
	StepEmail
	StepPassportFile
	StepPhotoFile
)

// FormSteps lists the active steps in the order they are collected.
var FormSteps = []Step{
	StepName,
	StepDateOfBirth,
	StepNationality,
	StepPassportNumber,
	StepPhone,
	StepEmail,
	StepPassportFile,
	StepPhotoFile,
}

var stepNames = map[Step]string{
	StepInactive:       "INACTIVE",
	StepName:           "NAME",
	StepDateOfBirth:    "DOB",
	StepNationality:    "NATIONALITY",
	StepPassportNumber: "PASSPORT_NUM",
	StepPhone:          "PHONE",
	StepEmail:          "EMAIL",
	StepPassportFile:   "PASSPORT_FILE",
	StepPhotoFile:      "PHOTO_FILE",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Active reports whether a form session is in progress.
func (s Step) Active() bool {
	return s >= StepName && s <= StepPhotoFile
}

// Next returns the step after s. The last file step leads to StepInactive.
func (s Step) Next() Step {
	if !s.Active() || s == StepPhotoFile {
		return StepInactive
	}
	return s + 1
}

// AcceptsFile reports whether the step collects an uploaded file.
func (s Step) AcceptsFile() bool {
	return s == StepPassportFile || s == StepPhotoFile
}

// Field returns the record field collected at this step.
func (s Step) Field() (Field, bool) {
	f, ok := stepFields[s]
	return f, ok
}

// Number is the 1-based position shown to the applicant ("3/8").
func (s Step) Number() int {
	if !s.Active() {
		return 0
	}
	return int(s)
}
