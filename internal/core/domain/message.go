package domain

import "time"

// Message is a single entry in the directed inbox between a user and the
// admin desk.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// CanMessage reports whether a message may be sent between two roles.
// Allowed pairs: a non-admin with an admin/super_admin (either direction),
// or two admins. Two non-admin users can never message each other.
func CanMessage(senderRole, receiverRole string) bool {
	if IsAdminRole(senderRole) || IsAdminRole(receiverRole) {
		return true
	}
	return false
}
