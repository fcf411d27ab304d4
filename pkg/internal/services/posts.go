package services

import (
	"strings"
	"sync"

	"github.com/Eliott67/TwINSA/pkg/internal/models"
	"github.com/Eliott67/TwINSA/pkg/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// postMu serializes post and inbox mutations the same way graphMu does
// for relationship edges.
var postMu sync.Mutex

// NewPost creates a post on behalf of its author. Hashtags are extracted
// and validated before anything is stored; a failing post is never
// created.
func NewPost(author string, content, image string) (models.Post, error) {
	postMu.Lock()
	defer postMu.Unlock()

	var post models.Post

	authorAccount, err := store.Accounts.Get(author)
	if err != nil {
		return post, ErrNoSuchAccount
	}

	if len(strings.TrimSpace(content)) == 0 && len(image) == 0 {
		return post, ErrEmptyPost
	}

	tags := ExtractHashtags(content)
	if err := ValidateHashtags(tags); err != nil {
		return post, err
	}

	post = models.Post{
		ID:        store.Posts.NextIDFor(author),
		Author:    author,
		Content:   content,
		Image:     image,
		Hashtags:  tags,
		Language:  DetectLanguage(content),
		CreatedAt: nowFunc(),
	}

	store.Posts.Save(post)
	authorAccount.Posts = append(authorAccount.Posts, post.ID)
	store.Accounts.Save(authorAccount)

	log.Debug().Str("author", author).Uint("id", post.ID).Msg("The post is posted.")
	return post, nil
}

// EditPost rewrites the content and recomputes hashtags; comments and
// likes are untouched.
func EditPost(author string, id uint, editor, newContent string) (models.Post, error) {
	postMu.Lock()
	defer postMu.Unlock()

	post, err := store.Posts.Get(author, id)
	if err != nil {
		return post, ErrNoSuchPost
	}
	if editor != post.Author {
		return post, ErrNotOwner
	}
	if len(strings.TrimSpace(newContent)) == 0 {
		return post, ErrEmptyPost
	}

	tags := ExtractHashtags(newContent)
	if err := ValidateHashtags(tags); err != nil {
		return post, err
	}

	post.Content = newContent
	post.Hashtags = tags
	post.Language = DetectLanguage(newContent)
	post.EditedAt = lo.ToPtr(nowFunc())

	store.Posts.Save(post)
	return post, nil
}

// DeletePost removes the post from the store and from the author's list.
func DeletePost(author string, id uint, actor string) error {
	postMu.Lock()
	defer postMu.Unlock()

	post, err := store.Posts.Get(author, id)
	if err != nil {
		return ErrNoSuchPost
	}
	if actor != post.Author {
		return ErrNotOwner
	}

	store.Posts.Delete(author, id)

	if authorAccount, err := store.Accounts.Get(author); err == nil {
		authorAccount.Posts = lo.Without(authorAccount.Posts, id)
		store.Accounts.Save(authorAccount)
	}
	return nil
}

// ToggleLike flips the username's like on the post. Adding a like by
// anyone but the author notifies the author; removing one is silent.
func ToggleLike(author string, id uint, username string) (bool, error) {
	postMu.Lock()
	defer postMu.Unlock()

	post, err := store.Posts.Get(author, id)
	if err != nil {
		return false, ErrNoSuchPost
	}
	if _, err := store.Accounts.Get(username); err != nil {
		return false, ErrNoSuchAccount
	}

	if post.LikedBy(username) {
		post.Likes = lo.Without(post.Likes, username)
		store.Posts.Save(post)
		return false, nil
	}

	post.Likes = append(post.Likes, username)
	store.Posts.Save(post)

	if username != post.Author {
		if authorAccount, err := store.Accounts.Get(post.Author); err == nil {
			notifyAccount(&authorAccount, models.Notification{
				Kind:    models.NotificationPostLiked,
				Actor:   username,
				Post:    lo.ToPtr(post.Ref()),
				Preview: TruncateContentPreview(post.Content),
			})
			store.Accounts.Save(authorAccount)
		}
	}
	return true, nil
}

// AddComment appends a comment with the post's next comment id. Ids keep
// increasing even across deletions.
func AddComment(author string, id uint, commenter, text string) (models.Comment, error) {
	postMu.Lock()
	defer postMu.Unlock()

	var comment models.Comment

	post, err := store.Posts.Get(author, id)
	if err != nil {
		return comment, ErrNoSuchPost
	}
	if _, err := store.Accounts.Get(commenter); err != nil {
		return comment, ErrNoSuchAccount
	}
	if len(strings.TrimSpace(text)) == 0 {
		return comment, ErrEmptyComment
	}

	post.NextCommentID++
	comment = models.Comment{
		ID:        post.NextCommentID,
		Author:    commenter,
		Text:      text,
		CreatedAt: nowFunc(),
	}
	post.Comments = append(post.Comments, comment)
	store.Posts.Save(post)

	if commenter != post.Author {
		if authorAccount, err := store.Accounts.Get(post.Author); err == nil {
			notifyAccount(&authorAccount, models.Notification{
				Kind:    models.NotificationPostCommented,
				Actor:   commenter,
				Post:    lo.ToPtr(post.Ref()),
				Preview: TruncateContentPreview(text),
			})
			store.Accounts.Save(authorAccount)
		}
	}
	return comment, nil
}

// EditComment lets only the comment's author rewrite its text.
func EditComment(author string, id uint, commentID uint, editor, newText string) (models.Comment, error) {
	postMu.Lock()
	defer postMu.Unlock()

	var comment models.Comment

	post, err := store.Posts.Get(author, id)
	if err != nil {
		return comment, ErrNoSuchPost
	}
	if len(strings.TrimSpace(newText)) == 0 {
		return comment, ErrEmptyComment
	}

	for idx, item := range post.Comments {
		if item.ID != commentID {
			continue
		}
		if item.Author != editor {
			return comment, ErrNotOwner
		}
		post.Comments[idx].Text = newText
		post.Comments[idx].EditedAt = lo.ToPtr(nowFunc())
		store.Posts.Save(post)
		return post.Comments[idx], nil
	}
	return comment, ErrNoSuchComment
}

// DeleteComment honors the dual-owner delete right: the comment's author
// or the post's author may remove it. The id is never reassigned.
func DeleteComment(author string, id uint, commentID uint, actor string) error {
	postMu.Lock()
	defer postMu.Unlock()

	post, err := store.Posts.Get(author, id)
	if err != nil {
		return ErrNoSuchPost
	}

	for idx, item := range post.Comments {
		if item.ID != commentID {
			continue
		}
		if item.Author != actor && post.Author != actor {
			return ErrNotOwner
		}
		post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)
		store.Posts.Save(post)
		return nil
	}
	return ErrNoSuchComment
}

const TruncateContentPreviewThreshold = 40

// TruncateContentPreview shortens notification previews to 40 characters
// with an ellipsis marker when longer.
func TruncateContentPreview(content string) string {
	runes := []rune(content)
	if len(runes) > TruncateContentPreviewThreshold {
		return string(runes[:TruncateContentPreviewThreshold]) + "..."
	}
	return content
}
