package models

import "strconv"

// Identity is the transport-assigned stable user identifier. For private chats
// it doubles as the chat to deliver to.
type Identity int64

func (i Identity) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// ParseIdentity parses a decimal identity as carried by action tags and commands.
func ParseIdentity(s string) (Identity, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return Identity(n), nil
}

// Sender describes who originated an inbound event.
type Sender struct {
	ID   Identity `json:"id"`
	Name string   `json:"name,omitempty"`
}

// FileRef is an opaque transport handle for an uploaded file.
type FileRef string
