package domain

import "time"

// NotificationType classifies what a notification is about.
type NotificationType string

const (
	NotificationFriendRequest  NotificationType = "friend_request"
	NotificationFriendAccepted NotificationType = "friend_accepted"
	NotificationInvite         NotificationType = "invite"
	NotificationInviteResolved NotificationType = "invite_resolved"
	NotificationVerification   NotificationType = "verification"
	NotificationMessage        NotificationType = "message"
	NotificationSystem         NotificationType = "system"
)

// DeliveryMethod is how a notification reaches its recipient.
type DeliveryMethod string

const (
	DeliveryInApp DeliveryMethod = "in_app"
	DeliveryEmail DeliveryMethod = "email"
	DeliverySMS   DeliveryMethod = "sms"
)

// Notification is one durable record per externally observable state
// transition affecting a non-actor party. UserID is empty for email/sms
// intents addressed to contacts that are not registered users; Target then
// carries the external address.
type Notification struct {
	ID         string
	UserID     string
	Type       NotificationType
	Title      string
	Message    string
	FromUserID string
	RelatedID  string
	Method     DeliveryMethod
	Target     string
	Read       bool
	CreatedAt  time.Time
}

// NotificationResult reports how (and whether) a notification was queued.
type NotificationResult struct {
	Sent   bool           `json:"sent"`
	Method DeliveryMethod `json:"method,omitempty"`
}
