package models

// Field names a single answer or file reference on the application form.
type Field string

const (
	FieldFullName        Field = "full_name"
	FieldDateOfBirth     Field = "dob"
	FieldNationality     Field = "nationality"
	FieldPassportNumber  Field = "passport_number"
	FieldPhone           Field = "phone"
	FieldEmail           Field = "email"
	FieldPassportFileRef Field = "passport_file_id"
	FieldPhotoFileRef    Field = "photo_file_id"
)

var stepFields = map[Step]Field{
	StepName:           FieldFullName,
	StepDateOfBirth:    FieldDateOfBirth,
	StepNationality:    FieldNationality,
	StepPassportNumber: FieldPassportNumber,
	StepPhone:          FieldPhone,
	StepEmail:          FieldEmail,
	StepPassportFile:   FieldPassportFileRef,
	StepPhotoFile:      FieldPhotoFileRef,
}

// FormRecord is the collected application of one identity.
// Invariant: answers are only ever present for a prefix of FormSteps.
type FormRecord struct {
	Identity Identity         `json:"identity"`
	Step     Step             `json:"step"`
	Answers  map[Field]string `json:"answers"`
}

// NewFormRecord returns an empty record positioned at the given step.
func NewFormRecord(id Identity, step Step) *FormRecord {
	return &FormRecord{
		Identity: id,
		Step:     step,
		Answers:  make(map[Field]string),
	}
}

// Get returns the value for f and whether it has been collected.
func (r *FormRecord) Get(f Field) (string, bool) {
	if r == nil || r.Answers == nil {
		return "", false
	}
	v, ok := r.Answers[f]
	return v, ok
}

// Value returns the collected value or an empty string.
func (r *FormRecord) Value(f Field) string {
	v, _ := r.Get(f)
	return v
}

func (r *FormRecord) Set(f Field, value string) {
	if r.Answers == nil {
		r.Answers = make(map[Field]string)
	}
	r.Answers[f] = value
}

// PassportFile returns the stored passport scan reference, if any.
func (r *FormRecord) PassportFile() (FileRef, bool) {
	v, ok := r.Get(FieldPassportFileRef)
	return FileRef(v), ok && v != ""
}

// PhotoFile returns the stored digital photo reference, if any.
func (r *FormRecord) PhotoFile() (FileRef, bool) {
	v, ok := r.Get(FieldPhotoFileRef)
	return FileRef(v), ok && v != ""
}

// Complete reports whether every step of the form has been answered.
func (r *FormRecord) Complete() bool {
	for _, s := range FormSteps {
		f, _ := s.Field()
		if _, ok := r.Get(f); !ok {
			return false
		}
	}
	return true
}

// Clone returns a deep copy so callers can mutate without touching stored state.
func (r *FormRecord) Clone() *FormRecord {
	if r == nil {
		return nil
	}
	out := NewFormRecord(r.Identity, r.Step)
	for k, v := range r.Answers {
		out.Answers[k] = v
	}
	return out
}
