package domain

// Channel identifies how an invite recipient is addressed.
type Channel string

const (
	ChannelUsername Channel = "username"
	ChannelEmail    Channel = "email"
	ChannelPhone    Channel = "phone"
)

// Valid reports whether c is one of the known channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelUsername, ChannelEmail, ChannelPhone:
		return true
	}
	return false
}

// Recipient is a normalized invite recipient: exactly one channel and its
// normalized value. UserID is set when the recipient is a known registered
// user (always for username recipients, lazily for email/phone ones once the
// matching user accepts).
type Recipient struct {
	Channel Channel
	Value   string
	UserID  string
}

// UsernameRecipient addresses a registered user by id and handle.
func UsernameRecipient(userID, username string) Recipient {
	return Recipient{Channel: ChannelUsername, Value: username, UserID: userID}
}

// EmailRecipient addresses a contact by normalized email address.
func EmailRecipient(addr string) Recipient {
	return Recipient{Channel: ChannelEmail, Value: addr}
}

// PhoneRecipient addresses a contact by E.164 phone number.
func PhoneRecipient(number string) Recipient {
	return Recipient{Channel: ChannelPhone, Value: number}
}

// SameIdentity reports whether two recipients address the same identity on
// the same channel.
func (r Recipient) SameIdentity(other Recipient) bool {
	if r.UserID != "" && r.UserID == other.UserID {
		return true
	}
	return r.Channel == other.Channel && r.Value == other.Value
}
