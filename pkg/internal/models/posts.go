package models

import "time"

// Post ids are sequential per author; the pair (Author, ID) is the global
// key. Lookups are always by that pair, never by object identity.
type Post struct {
	ID     uint   `json:"id"`
	Author string `json:"author"`

	Content  string   `json:"content"`
	Image    string   `json:"image,omitempty"`
	Hashtags []string `json:"hashtags"`
	Language string   `json:"language,omitempty"`

	Likes    []string  `json:"likes"`
	Comments []Comment `json:"comments"`

	// NextCommentID is the monotonically increasing comment counter.
	// It is persisted so comment ids are never reused after deletion.
	NextCommentID uint `json:"next_comment_id"`

	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
}

type Comment struct {
	ID        uint       `json:"id"`
	Author    string     `json:"author"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
}

func (p Post) LikedBy(username string) bool {
	for _, liker := range p.Likes {
		if liker == username {
			return true
		}
	}
	return false
}

// PostRef is the composite key carried inside notifications.
type PostRef struct {
	Author string `json:"author"`
	ID     uint   `json:"id"`
}

func (p Post) Ref() PostRef {
	return PostRef{Author: p.Author, ID: p.ID}
}
