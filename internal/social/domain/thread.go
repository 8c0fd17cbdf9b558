package domain

import "time"

// Thread is the conversation thread created when an invite resolves. The
// messaging service owns everything else about it; the social core only
// creates it and hands back the id.
type Thread struct {
	ID           string
	CreatedBy    string
	Participants []string
	CreatedAt    time.Time
}
