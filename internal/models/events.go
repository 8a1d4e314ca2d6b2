package models

// Event is an inbound event delivered by the transport. The concrete types
// below are the complete set.
type Event interface {
	Sender() Sender
	Kind() string
}

type TextMessage struct {
	From Sender
	Text string
}

// ButtonPress carries the raw action tag; it is decoded with ParseAction at
// the routing boundary.
type ButtonPress struct {
	From       Sender
	CallbackID string
	MessageID  int
	Tag        string
}

type DocumentUpload struct {
	From    Sender
	FileRef FileRef
}

// PhotoUpload lists every resolution of the photo, highest resolution last.
type PhotoUpload struct {
	From     Sender
	FileRefs []FileRef
}

type Command struct {
	From Sender
	Name string
	Args []string
}

func (e TextMessage) Sender() Sender    { return e.From }
func (e ButtonPress) Sender() Sender    { return e.From }
func (e DocumentUpload) Sender() Sender { return e.From }
func (e PhotoUpload) Sender() Sender    { return e.From }
func (e Command) Sender() Sender        { return e.From }

func (TextMessage) Kind() string    { return "text" }
func (ButtonPress) Kind() string    { return "button" }
func (DocumentUpload) Kind() string { return "document" }
func (PhotoUpload) Kind() string    { return "photo" }
func (Command) Kind() string        { return "command" }

// Origin returns where replies to the event should be delivered.
func (e ButtonPress) Origin() Origin {
	return Origin{Chat: e.From.ID, MessageID: e.MessageID}
}

// OriginOf returns the reply origin for any event. Only button presses are
// editable.
func OriginOf(e Event) Origin {
	if bp, ok := e.(ButtonPress); ok {
		return bp.Origin()
	}
	return Origin{Chat: e.Sender().ID}
}
