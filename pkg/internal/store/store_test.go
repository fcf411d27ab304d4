package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Eliott67/TwINSA/pkg/internal/models"
)

func TestAccountStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users_db.json")

	accounts, err := OpenAccountStore(path)
	if err != nil {
		t.Fatalf("OpenAccountStore() error = %v", err)
	}

	accounts.Save(models.Account{
		Username:  "mat",
		Email:     "mat@example.com",
		Following: []string{"bob"},
		Notifications: []models.Notification{
			{Kind: models.NotificationNewFollower, Actor: "bob", CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		},
	})
	if err := accounts.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	reloaded, err := OpenAccountStore(path)
	if err != nil {
		t.Fatalf("OpenAccountStore() reload error = %v", err)
	}
	account, err := reloaded.Get("mat")
	if err != nil {
		t.Fatalf("Get() after reload error = %v", err)
	}
	if account.Email != "mat@example.com" || !account.Follows("bob") {
		t.Errorf("reloaded account = %+v", account)
	}
	if len(account.Notifications) != 1 || account.Notifications[0].Actor != "bob" {
		t.Errorf("reloaded notifications = %+v", account.Notifications)
	}
}

func TestAccountStoreLookups(t *testing.T) {
	accounts, _ := OpenAccountStore("")
	accounts.Save(models.Account{Username: "mat", Email: "Mat@Example.com"})

	if _, err := accounts.Get("ghost"); err != ErrAccountNotFound {
		t.Errorf("Get(ghost) error = %v, want ErrAccountNotFound", err)
	}
	if !accounts.ExistsByEmail("mat@example.com") {
		t.Error("email lookup should be case-insensitive")
	}
	if _, err := accounts.GetByEmail("MAT@EXAMPLE.COM"); err != nil {
		t.Errorf("GetByEmail() error = %v", err)
	}

	accounts.Delete("mat")
	if accounts.Exists("mat") {
		t.Error("account should be gone after Delete")
	}
}

func TestAccountStoreGetAllOrdered(t *testing.T) {
	accounts, _ := OpenAccountStore("")
	for _, username := range []string{"zoe", "alice", "mat"} {
		accounts.Save(models.Account{Username: username})
	}

	all := accounts.GetAll()
	if len(all) != 3 {
		t.Fatalf("GetAll() = %d accounts, want 3", len(all))
	}
	if all[0].Username != "alice" || all[2].Username != "zoe" {
		t.Errorf("GetAll() order = [%s %s %s], want alphabetical", all[0].Username, all[1].Username, all[2].Username)
	}
}

func TestPostStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts_db.json")

	posts, err := OpenPostStore(path)
	if err != nil {
		t.Fatalf("OpenPostStore() error = %v", err)
	}

	posts.Save(models.Post{ID: 1, Author: "mat", Content: "hello", Hashtags: []string{"hello"}})
	posts.Save(models.Post{ID: 1, Author: "bob", Content: "also id 1"})
	if err := posts.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	reloaded, err := OpenPostStore(path)
	if err != nil {
		t.Fatalf("OpenPostStore() reload error = %v", err)
	}
	if reloaded.Count() != 2 {
		t.Fatalf("Count() after reload = %d, want 2 (ids are only unique per author)", reloaded.Count())
	}
	post, err := reloaded.Get("mat", 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if post.Content != "hello" {
		t.Errorf("post content = %q, want the author's own post", post.Content)
	}
}

func TestPostStoreSaveReplaces(t *testing.T) {
	posts, _ := OpenPostStore("")
	posts.Save(models.Post{ID: 1, Author: "mat", Content: "v1"})
	posts.Save(models.Post{ID: 1, Author: "mat", Content: "v2"})

	if posts.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 after replace", posts.Count())
	}
	post, _ := posts.Get("mat", 1)
	if post.Content != "v2" {
		t.Errorf("post content = %q, want v2", post.Content)
	}
}

func TestPostStoreReturnsDetachedCopies(t *testing.T) {
	posts, _ := OpenPostStore("")
	posts.Save(models.Post{
		ID:       1,
		Author:   "mat",
		Likes:    []string{"bob"},
		Comments: []models.Comment{{ID: 1, Author: "bob", Text: "first"}},
	})

	held, _ := posts.Get("mat", 1)
	held.Likes[0] = "mallory"
	held.Comments[0].Text = "tampered"

	stored, _ := posts.Get("mat", 1)
	if stored.Likes[0] != "bob" {
		t.Errorf("stored likes = %v, mutating a returned copy must not reach the store", stored.Likes)
	}
	if stored.Comments[0].Text != "first" {
		t.Errorf("stored comment = %q, mutating a returned copy must not reach the store", stored.Comments[0].Text)
	}

	all := posts.LoadAll()
	all[0].Comments[0].Text = "tampered again"
	stored, _ = posts.Get("mat", 1)
	if stored.Comments[0].Text != "first" {
		t.Errorf("stored comment = %q after mutating a LoadAll copy", stored.Comments[0].Text)
	}
}

func TestPostStoreNextIDSkipsDeletions(t *testing.T) {
	posts, _ := OpenPostStore("")
	posts.Save(models.Post{ID: 1, Author: "mat"})
	posts.Save(models.Post{ID: 2, Author: "mat"})
	posts.Delete("mat", 1)

	if next := posts.NextIDFor("mat"); next != 3 {
		t.Errorf("NextIDFor() = %d, want 3 (count-based ids would collide with 2)", next)
	}
	if next := posts.NextIDFor("bob"); next != 1 {
		t.Errorf("NextIDFor() for a fresh author = %d, want 1", next)
	}
}

func TestPostStoreByAuthorAndDeleteByAuthor(t *testing.T) {
	posts, _ := OpenPostStore("")
	posts.Save(models.Post{ID: 1, Author: "mat"})
	posts.Save(models.Post{ID: 1, Author: "bob"})
	posts.Save(models.Post{ID: 2, Author: "mat"})

	if got := posts.ByAuthor("mat"); len(got) != 2 {
		t.Errorf("ByAuthor(mat) = %d posts, want 2", len(got))
	}

	posts.DeleteByAuthor("mat")
	if posts.Count() != 1 {
		t.Errorf("Count() after DeleteByAuthor = %d, want 1", posts.Count())
	}
	if _, err := posts.Get("bob", 1); err != nil {
		t.Errorf("bob's post should survive, got error %v", err)
	}
}

func TestPostStoreSaveAllSnapshotReplace(t *testing.T) {
	posts, _ := OpenPostStore("")
	posts.Save(models.Post{ID: 1, Author: "mat"})

	posts.SaveAll([]models.Post{
		{ID: 5, Author: "bob"},
		{ID: 6, Author: "bob"},
	})

	if posts.Count() != 2 {
		t.Fatalf("Count() = %d, want the replacement snapshot only", posts.Count())
	}
	if _, err := posts.Get("mat", 1); err != ErrPostNotFound {
		t.Errorf("old snapshot should be gone, got error %v", err)
	}
}
