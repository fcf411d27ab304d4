package services

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"case folding and dedup", "Hi #Test #test #a_b", []string{"test", "a_b"}},
		{"first occurrence order", "#beta #alpha #beta", []string{"beta", "alpha"}},
		{"no tags", "plain text without tags", []string{}},
		{"digits and underscore survive extraction", "#abc123 #under_score", []string{"abc123", "under_score"}},
		{"hash alone is not a tag", "just a # sign", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHashtags(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractHashtags(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestExtractHashtags_Idempotent(t *testing.T) {
	content := "Hello #INSA #insa #Go"
	first := ExtractHashtags(content)
	second := ExtractHashtags(content)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not idempotent: %v vs %v", first, second)
	}
}

func TestValidateHashtags(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		wantTag string
	}{
		{"valid", []string{"abc123", "insa"}, ""},
		{"too long", []string{"abcdefghijk"}, "abcdefghijk"},
		{"ten chars is fine", []string{"abcdefghij"}, ""},
		{"underscore rejected", []string{"a_b"}, "a_b"},
		{"first violation reported", []string{"fine", "a_b", "abcdefghijk"}, "a_b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHashtags(tt.tags)
			if len(tt.wantTag) == 0 {
				if err != nil {
					t.Errorf("ValidateHashtags(%v) error = %v, want nil", tt.tags, err)
				}
				return
			}

			var hashtagErr *HashtagError
			if !errors.As(err, &hashtagErr) {
				t.Fatalf("ValidateHashtags(%v) error = %v, want *HashtagError", tt.tags, err)
			}
			if hashtagErr.Tag != tt.wantTag {
				t.Errorf("offending tag = %q, want %q", hashtagErr.Tag, tt.wantTag)
			}
		})
	}
}

func TestPostsByHashtag(t *testing.T) {
	setupStores(t)
	seedAccount(t, "bob", true)

	if _, err := NewPost("bob", "first #insa", ""); err != nil {
		t.Fatalf("NewPost() error = %v", err)
	}
	if _, err := NewPost("bob", "unrelated #other", ""); err != nil {
		t.Fatalf("NewPost() error = %v", err)
	}
	if _, err := NewPost("bob", "second #INSA", ""); err != nil {
		t.Fatalf("NewPost() error = %v", err)
	}

	posts := PostsByHashtag("InSa")
	if len(posts) != 2 {
		t.Fatalf("PostsByHashtag() returned %d posts, want 2", len(posts))
	}
	if !posts[0].CreatedAt.After(posts[1].CreatedAt) {
		t.Error("results should be sorted newest first")
	}
}

func TestTrendingHashtags(t *testing.T) {
	setupStores(t)
	seedAccount(t, "bob", true)

	for _, content := range []string{"#go #insa", "#go", "#go #web", "#insa"} {
		if _, err := NewPost("bob", content, ""); err != nil {
			t.Fatalf("NewPost(%q) error = %v", content, err)
		}
	}

	counts, err := TrendingHashtags(2)
	if err != nil {
		t.Fatalf("TrendingHashtags() error = %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("TrendingHashtags() returned %d entries, want 2", len(counts))
	}
	if counts[0].Tag != "go" || counts[0].Count != 3 {
		t.Errorf("top tag = %+v, want go with count 3", counts[0])
	}
	if counts[1].Tag != "insa" || counts[1].Count != 2 {
		t.Errorf("second tag = %+v, want insa with count 2", counts[1])
	}
}
