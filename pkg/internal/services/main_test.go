package services

import (
	"testing"
	"time"

	"github.com/Eliott67/TwINSA/pkg/internal/models"
	"github.com/Eliott67/TwINSA/pkg/internal/store"
)

// setupStores swaps in fresh memory-only stores and a deterministic
// clock that advances one second per call.
func setupStores(t *testing.T) {
	t.Helper()

	accounts, err := store.OpenAccountStore("")
	if err != nil {
		t.Fatalf("OpenAccountStore() error = %v", err)
	}
	posts, err := store.OpenPostStore("")
	if err != nil {
		t.Fatalf("OpenPostStore() error = %v", err)
	}
	store.Accounts = accounts
	store.Posts = posts

	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	prevNow := nowFunc
	nowFunc = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	t.Cleanup(func() { nowFunc = prevNow })
}

func seedAccount(t *testing.T, username string, isPublic bool) models.Account {
	t.Helper()

	account := models.Account{
		Username: username,
		Email:    username + "@example.com",
		IsPublic: isPublic,
	}
	store.Accounts.Save(account)
	return account
}

func mustGetAccount(t *testing.T, username string) models.Account {
	t.Helper()

	account, err := store.Accounts.Get(username)
	if err != nil {
		t.Fatalf("Accounts.Get(%q) error = %v", username, err)
	}
	return account
}

func mustGetPost(t *testing.T, author string, id uint) models.Post {
	t.Helper()

	post, err := store.Posts.Get(author, id)
	if err != nil {
		t.Fatalf("Posts.Get(%q, %d) error = %v", author, id, err)
	}
	return post
}
