package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Eliott67/TwINSA/pkg/internal/models"
	"github.com/Eliott67/TwINSA/pkg/internal/store"
	"github.com/samber/lo"
)

const (
	FeedModeFollowing = "following"
	FeedModeDiscover  = "discover"
)

// Content-type filter flags. Multiple flags are OR'd per post.
const (
	FeedTypeText    = "text"
	FeedTypeImage   = "image"
	FeedTypeHashtag = "hashtag"
	FeedTypeEmoji   = "emoji"
)

// FeedFilter narrows a feed after mode selection. A zero filter keeps
// every post of the mode.
type FeedFilter struct {
	Hashtags []string
	Since    *time.Time
	Until    *time.Time
	Types    []string
}

// BuildFeed produces the ordered view of posts for the viewer.
//
// The "following" mode is a strict allow-list over the viewer plus their
// following set; it deliberately bypasses CanView so followed private
// authors stay visible and unfollowed public authors stay out. The
// "discover" mode shows public authors the viewer does not follow yet.
func BuildFeed(viewer models.Account, mode string, filter FeedFilter) ([]models.Post, error) {
	authors := map[string]bool{}

	switch mode {
	case FeedModeFollowing:
		authors[viewer.Username] = true
		for _, username := range viewer.Following {
			authors[username] = true
		}
	case FeedModeDiscover:
		for _, account := range store.Accounts.GetAll() {
			if !account.IsPublic {
				continue
			}
			if account.Username == viewer.Username || viewer.Follows(account.Username) {
				continue
			}
			authors[account.Username] = true
		}
	default:
		return nil, fmt.Errorf("unknown feed mode: %s", mode)
	}

	posts := lo.Filter(store.Posts.LoadAll(), func(post models.Post, _ int) bool {
		return authors[post.Author]
	})
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return applyFeedFilter(posts, filter), nil
}

// applyFeedFilter narrows the ordered feed. Date and content-type
// filtering preserve input order; a hashtag filter re-sorts the result
// newest first afterwards.
func applyFeedFilter(posts []models.Post, filter FeedFilter) []models.Post {
	if filter.Since != nil || filter.Until != nil {
		posts = lo.Filter(posts, func(post models.Post, _ int) bool {
			if filter.Since != nil && post.CreatedAt.Before(*filter.Since) {
				return false
			}
			if filter.Until != nil && !post.CreatedAt.Before(endOfDay(*filter.Until)) {
				return false
			}
			return true
		})
	}

	if len(filter.Types) > 0 {
		posts = lo.Filter(posts, func(post models.Post, _ int) bool {
			for _, flag := range filter.Types {
				if postHasType(post, flag) {
					return true
				}
			}
			return false
		})
	}

	if len(filter.Hashtags) > 0 {
		wanted := lo.Map(filter.Hashtags, func(tag string, _ int) string {
			return strings.ToLower(tag)
		})
		posts = lo.Filter(posts, func(post models.Post, _ int) bool {
			return len(lo.Intersect(post.Hashtags, wanted)) > 0
		})
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	}

	return posts
}

// PostsByAuthor returns the owner's posts newest first, gated by
// CanView. A denied view yields an empty list alongside the verdict so
// the caller can render the locked state.
func PostsByAuthor(viewer, owner models.Account) ([]models.Post, bool) {
	if !CanView(viewer, owner) {
		return []models.Post{}, false
	}

	posts := store.Posts.ByAuthor(owner.Username)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, true
}

func postHasType(post models.Post, flag string) bool {
	switch flag {
	case FeedTypeText:
		return len(strings.TrimSpace(post.Content)) > 0
	case FeedTypeImage:
		return len(post.Image) > 0
	case FeedTypeHashtag:
		return len(post.Hashtags) > 0
	case FeedTypeEmoji:
		return containsEmoji(post.Content)
	default:
		return false
	}
}

// The date filter is inclusive at the start and exclusive at the end of
// the final day.
func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}

func containsEmoji(content string) bool {
	for _, r := range content {
		switch {
		case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, symbols
			return true
		case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
			return true
		}
	}
	return false
}
