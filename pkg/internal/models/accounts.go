package models

import (
	"time"

	"github.com/samber/lo"
)

// Account is the canonical user record. Relationship lists hold usernames
// only; they are resolved to full accounts at read time via the store.
type Account struct {
	Username string `json:"username"`
	Email    string `json:"email"`

	// CredentialRef is an opaque handle managed by the auth package.
	// The core never inspects it.
	CredentialRef string `json:"credential_ref"`
	ResetToken    string `json:"reset_token,omitempty"`

	Name           string `json:"name"`
	Age            *int   `json:"age"`
	Country        string `json:"country"`
	IsPublic       bool   `json:"is_public"`
	ProfilePicture string `json:"profile_picture,omitempty"`

	Followers       []string `json:"followers"`
	Following       []string `json:"following"`
	Blocked         []string `json:"blocked_users"`
	PendingRequests []string `json:"pending_requests"`

	Notifications []Notification `json:"notifications"`

	// Posts keeps the account's post ids in insertion order.
	Posts []uint `json:"posts"`

	CreatedAt time.Time `json:"created_at"`
}

func (a Account) Follows(username string) bool {
	return lo.Contains(a.Following, username)
}

func (a Account) FollowedBy(username string) bool {
	return lo.Contains(a.Followers, username)
}

func (a Account) Blocks(username string) bool {
	return lo.Contains(a.Blocked, username)
}

func (a Account) HasPendingRequestFrom(username string) bool {
	return lo.Contains(a.PendingRequests, username)
}
