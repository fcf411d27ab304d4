// Package store holds the flat-file JSON repositories. Each store keeps
// an in-memory snapshot guarded by a single RWMutex and writes the whole
// collection back on flush (snapshot replace semantics). Values are
// returned by copy; callers must look entities up by username or post id,
// never hold on to object identity.
package store

import (
	"errors"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrPostNotFound    = errors.New("post not found")
)

// Package-level handles, opened once in main.
var (
	Accounts *AccountStore
	Posts    *PostStore
)

// Open initializes both stores from their backing files. Empty paths
// give memory-only stores, which tests rely on.
func Open(accountsPath, postsPath string) error {
	accounts, err := OpenAccountStore(accountsPath)
	if err != nil {
		return err
	}
	posts, err := OpenPostStore(postsPath)
	if err != nil {
		return err
	}
	Accounts = accounts
	Posts = posts
	return nil
}

// Flush writes both stores back to disk.
func Flush() {
	if Accounts != nil {
		if err := Accounts.Flush(); err != nil {
			log.Error().Err(err).Msg("An error occurred when flushing accounts store...")
		}
	}
	if Posts != nil {
		if err := Posts.Flush(); err != nil {
			log.Error().Err(err).Msg("An error occurred when flushing posts store...")
		}
	}
}

func readSnapshot(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func writeSnapshot(path string, in any) error {
	raw, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return err
	}

	// Write to a sibling temp file first so a crash mid-write cannot
	// truncate the snapshot.
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
