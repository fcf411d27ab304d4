package store

import (
	"sync"

	"github.com/Eliott67/TwINSA/pkg/internal/models"
)

// PostStore is the flat-file repository for posts. Posts are kept in
// insertion order; the lookup key is the (author, id) pair.
type PostStore struct {
	mu    sync.RWMutex
	path  string
	items []models.Post
}

func OpenPostStore(path string) (*PostStore, error) {
	s := &PostStore{path: path}
	if len(path) == 0 {
		return s, nil
	}
	if err := readSnapshot(path, &s.items); err != nil {
		return nil, err
	}
	return s, nil
}

// clonePost detaches the nested slices so a returned post never shares
// a backing array with the stored one or with earlier snapshots.
func clonePost(post models.Post) models.Post {
	if post.Hashtags != nil {
		post.Hashtags = append([]string(nil), post.Hashtags...)
	}
	if post.Likes != nil {
		post.Likes = append([]string(nil), post.Likes...)
	}
	if post.Comments != nil {
		post.Comments = append([]models.Comment(nil), post.Comments...)
	}
	return post
}

func (s *PostStore) Get(author string, id uint) (models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, post := range s.items {
		if post.Author == author && post.ID == id {
			return clonePost(post), nil
		}
	}
	return models.Post{}, ErrPostNotFound
}

// LoadAll returns a copy of the whole collection in insertion order.
func (s *PostStore) LoadAll() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.items))
	for _, post := range s.items {
		posts = append(posts, clonePost(post))
	}
	return posts
}

func (s *PostStore) ByAuthor(author string) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var posts []models.Post
	for _, post := range s.items {
		if post.Author == author {
			posts = append(posts, clonePost(post))
		}
	}
	return posts
}

// NextIDFor assigns the author's next post id. Using max+1 instead of
// count+1 keeps ids unique for the author even after deletions.
func (s *PostStore) NextIDFor(author string) uint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var max uint
	for _, post := range s.items {
		if post.Author == author && post.ID > max {
			max = post.ID
		}
	}
	return max + 1
}

// Save inserts the post or replaces the stored version with the same
// (author, id) pair.
func (s *PostStore) Save(post models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post = clonePost(post)
	for idx, item := range s.items {
		if item.Author == post.Author && item.ID == post.ID {
			s.items[idx] = post
			return
		}
	}
	s.items = append(s.items, post)
}

func (s *PostStore) Delete(author string, id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for idx, item := range s.items {
		if item.Author == author && item.ID == id {
			s.items = append(s.items[:idx], s.items[idx+1:]...)
			return
		}
	}
}

func (s *PostStore) DeleteByAuthor(author string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.Author != author {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// SaveAll replaces the whole collection, matching the snapshot replace
// semantics of the flat file.
func (s *PostStore) SaveAll(posts []models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]models.Post, 0, len(posts))
	for _, post := range posts {
		s.items = append(s.items, clonePost(post))
	}
}

func (s *PostStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

func (s *PostStore) Flush() error {
	if len(s.path) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return writeSnapshot(s.path, s.items)
}
