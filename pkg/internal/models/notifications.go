package models

import (
	"fmt"
	"time"
)

const (
	NotificationNewFollower     = "follower.new"
	NotificationFollowRequest   = "follow.request"
	NotificationFollowAccepted  = "follow.accepted"
	NotificationFollowDeclined  = "follow.declined"
	NotificationFollowConfirmed = "follow.confirmed"
	NotificationPostLiked       = "post.liked"
	NotificationPostCommented   = "post.commented"
)

// Notification is a structured inbox event. It is stored as data and
// rendered to text only at the display boundary.
type Notification struct {
	Kind      string    `json:"kind"`
	Actor     string    `json:"actor"`
	Post      *PostRef  `json:"post,omitempty"`
	Preview   string    `json:"preview,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Render produces the user-facing message for an inbox event.
func (n Notification) Render() string {
	switch n.Kind {
	case NotificationNewFollower:
		return fmt.Sprintf("%s is now following you.", n.Actor)
	case NotificationFollowRequest:
		return fmt.Sprintf("%s has sent you a follow request.", n.Actor)
	case NotificationFollowAccepted:
		return fmt.Sprintf("You are now following %s.", n.Actor)
	case NotificationFollowConfirmed:
		return fmt.Sprintf("%s is now following you.", n.Actor)
	case NotificationFollowDeclined:
		return fmt.Sprintf("%s declined your follow request.", n.Actor)
	case NotificationPostLiked:
		return fmt.Sprintf("%s liked your post: %s", n.Actor, n.Preview)
	case NotificationPostCommented:
		return fmt.Sprintf("%s commented on your post: %s", n.Actor, n.Preview)
	default:
		return fmt.Sprintf("%s sent you a notification.", n.Actor)
	}
}
