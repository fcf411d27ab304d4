package services

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	localCache "github.com/Eliott67/TwINSA/pkg/internal/cache"
	"github.com/Eliott67/TwINSA/pkg/internal/models"
	"github.com/Eliott67/TwINSA/pkg/internal/store"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	gostore "github.com/eko/gocache/lib/v4/store"
	"github.com/samber/lo"
)

const MaxHashtagLength = 10

var (
	hashtagPattern  = regexp.MustCompile(`#(\w+)`)
	hashtagAlphanum = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// ExtractHashtags scans content for #-tokens, lower-cases them and
// de-duplicates preserving first-occurrence order.
func ExtractHashtags(content string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(content, -1)
	tags := make([]string, 0, len(matches))
	for _, match := range matches {
		tags = append(tags, strings.ToLower(match[1]))
	}
	return lo.Uniq(tags)
}

// ValidateHashtags checks every extracted tag against the length and
// character rules, stopping at the first violation. Underscores survive
// extraction but never validation.
func ValidateHashtags(tags []string) error {
	for _, tag := range tags {
		if len(tag) > MaxHashtagLength {
			return &HashtagError{Tag: tag, Reason: "must be at most 10 characters"}
		}
		if !hashtagAlphanum.MatchString(tag) {
			return &HashtagError{Tag: tag, Reason: "must contain only letters and digits"}
		}
	}
	return nil
}

// PostsByHashtag filters the whole collection by case-insensitive tag
// membership, newest first.
func PostsByHashtag(tag string) []models.Post {
	tag = strings.ToLower(tag)

	posts := lo.Filter(store.Posts.LoadAll(), func(post models.Post, _ int) bool {
		return lo.Contains(post.Hashtags, tag)
	})
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

type HashtagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

const trendingHashtagWindow = 7 * 24 * time.Hour

// TrendingHashtags aggregates tag frequency over the last week of posts.
// The result is cached for a few minutes; it is a discovery surface, not
// a visibility decision.
func TrendingHashtags(limit int) ([]HashtagCount, error) {
	if limit <= 0 {
		limit = 10
	}

	var marshal *marshaler.Marshaler
	ctx := context.Background()
	if localCache.S != nil {
		marshal = marshaler.New(cache.New[any](localCache.S))
		if cached, err := marshal.Get(ctx, "trending-hashtags", new([]HashtagCount)); err == nil {
			counts := *cached.(*[]HashtagCount)
			if limit < len(counts) {
				counts = counts[:limit]
			}
			return counts, nil
		}
	}

	horizon := nowFunc().Add(-trendingHashtagWindow)
	frequency := map[string]int{}
	for _, post := range store.Posts.LoadAll() {
		if post.CreatedAt.Before(horizon) {
			continue
		}
		for _, tag := range post.Hashtags {
			frequency[tag]++
		}
	}

	counts := make([]HashtagCount, 0, len(frequency))
	for tag, count := range frequency {
		counts = append(counts, HashtagCount{Tag: tag, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Tag < counts[j].Tag
	})

	if marshal != nil {
		_ = marshal.Set(ctx, "trending-hashtags", counts, gostore.WithExpiration(5*time.Minute))
	}

	if limit < len(counts) {
		counts = counts[:limit]
	}
	return counts, nil
}
