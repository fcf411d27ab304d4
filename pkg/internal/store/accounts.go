package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/Eliott67/TwINSA/pkg/internal/models"
)

// AccountStore is the flat-file repository for accounts, keyed by
// username the way the original users database JSON is.
type AccountStore struct {
	mu    sync.RWMutex
	path  string
	items map[string]models.Account
}

func OpenAccountStore(path string) (*AccountStore, error) {
	s := &AccountStore{
		path:  path,
		items: make(map[string]models.Account),
	}
	if len(path) == 0 {
		return s, nil
	}
	if err := readSnapshot(path, &s.items); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AccountStore) Get(username string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.items[username]
	if !ok {
		return account, ErrAccountNotFound
	}
	return account, nil
}

func (s *AccountStore) Exists(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.items[username]
	return ok
}

func (s *AccountStore) ExistsByEmail(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.items {
		if strings.EqualFold(account.Email, email) {
			return true
		}
	}
	return false
}

func (s *AccountStore) GetByEmail(email string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.items {
		if strings.EqualFold(account.Email, email) {
			return account, nil
		}
	}
	return models.Account{}, ErrAccountNotFound
}

// GetAll returns every account, ordered by username for deterministic
// iteration.
func (s *AccountStore) GetAll() []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]models.Account, 0, len(s.items))
	for _, account := range s.items {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Username < accounts[j].Username
	})
	return accounts
}

func (s *AccountStore) Save(account models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[account.Username] = account
}

func (s *AccountStore) Delete(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, username)
}

func (s *AccountStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

func (s *AccountStore) Flush() error {
	if len(s.path) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return writeSnapshot(s.path, s.items)
}
