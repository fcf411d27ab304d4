package services

import (
	"github.com/Eliott67/TwINSA/pkg/internal/store"
	"github.com/rs/zerolog/log"
)

// DoAutoSnapshot writes both stores back to their JSON files. Wired as a
// periodic task so a crash loses at most one interval of changes.
func DoAutoSnapshot() {
	log.Debug().Msg("Flushing stores to disk...")
	store.Flush()
}
