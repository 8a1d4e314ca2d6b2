package models

// Button is a single keyboard button. Exactly one of Action or URL is set.
type Button struct {
	Label  string `json:"label"`
	Action string `json:"action,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Keyboard is an inline keyboard laid out in rows.
type Keyboard struct {
	Rows [][]Button `json:"rows"`
}

// NewKeyboard builds a keyboard with one button per row.
func NewKeyboard(buttons ...Button) *Keyboard {
	kb := &Keyboard{Rows: make([][]Button, 0, len(buttons))}
	for _, b := range buttons {
		kb.Rows = append(kb.Rows, []Button{b})
	}
	return kb
}

// ActionButton returns a button that emits the given action when pressed.
func ActionButton(label string, a Action) Button {
	return Button{Label: label, Action: a.Tag()}
}

// LinkButton returns a button that opens a URL.
func LinkButton(label, url string) Button {
	return Button{Label: label, URL: url}
}

// Origin identifies where a reply should go. A non-zero MessageID means the
// event came from a button on that message, which may be edited in place.
type Origin struct {
	Chat      Identity
	MessageID int
}

// Editable reports whether the origin refers to an existing message.
func (o Origin) Editable() bool {
	return o.MessageID != 0
}

// FileKind distinguishes how a file reference is re-sent.
type FileKind string

const (
	FileKindDocument FileKind = "document"
	FileKindPhoto    FileKind = "photo"
)

// Alternate returns the other file kind, used as the fallback delivery.
func (k FileKind) Alternate() FileKind {
	if k == FileKindDocument {
		return FileKindPhoto
	}
	return FileKindDocument
}
