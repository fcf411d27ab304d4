package services

import (
	"sync"

	"github.com/Eliott67/TwINSA/pkg/internal/models"
	"github.com/Eliott67/TwINSA/pkg/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// graphMu serializes every relationship mutation: each operation loads
// fresh snapshots of both sides, mutates them, and saves them back as a
// unit.
var graphMu sync.Mutex

// FollowUser is the single entry point for both the public auto-follow
// and the private follow request; the privacy flag of the target decides
// which branch runs.
func FollowUser(actor, target string) error {
	graphMu.Lock()
	defer graphMu.Unlock()

	if actor == target {
		return ErrSelfFollow
	}

	actorAccount, err := store.Accounts.Get(actor)
	if err != nil {
		return ErrNoSuchAccount
	}
	targetAccount, err := store.Accounts.Get(target)
	if err != nil {
		return ErrNoSuchAccount
	}

	if actorAccount.Blocks(target) || targetAccount.Blocks(actor) {
		return ErrBlocked
	}
	if actorAccount.Follows(target) {
		return nil
	}

	if targetAccount.IsPublic {
		establishFollowEdge(&actorAccount, &targetAccount)
		// A request sent while the target was still private is settled
		// by the follow itself.
		targetAccount.PendingRequests = lo.Without(targetAccount.PendingRequests, actor)
		notifyAccount(&targetAccount, models.Notification{
			Kind:  models.NotificationNewFollower,
			Actor: actor,
		})
		store.Accounts.Save(actorAccount)
		store.Accounts.Save(targetAccount)
		log.Debug().Str("actor", actor).Str("target", target).Msg("Followed a public account.")
		return nil
	}

	if !targetAccount.HasPendingRequestFrom(actor) {
		targetAccount.PendingRequests = append(targetAccount.PendingRequests, actor)
		notifyAccount(&targetAccount, models.Notification{
			Kind:  models.NotificationFollowRequest,
			Actor: actor,
		})
		store.Accounts.Save(targetAccount)
		log.Debug().Str("actor", actor).Str("target", target).Msg("Sent a follow request.")
	}
	return nil
}

// ResolveFollowRequest settles a pending request on the target's side.
func ResolveFollowRequest(target, actor string, accept bool) error {
	graphMu.Lock()
	defer graphMu.Unlock()

	targetAccount, err := store.Accounts.Get(target)
	if err != nil {
		return ErrNoSuchAccount
	}
	if !targetAccount.HasPendingRequestFrom(actor) {
		return ErrNoSuchRequest
	}
	actorAccount, err := store.Accounts.Get(actor)
	if err != nil {
		return ErrNoSuchAccount
	}

	targetAccount.PendingRequests = lo.Without(targetAccount.PendingRequests, actor)

	if accept {
		establishFollowEdge(&actorAccount, &targetAccount)
		notifyAccount(&actorAccount, models.Notification{
			Kind:  models.NotificationFollowAccepted,
			Actor: target,
		})
		notifyAccount(&targetAccount, models.Notification{
			Kind:  models.NotificationFollowConfirmed,
			Actor: actor,
		})
		store.Accounts.Save(actorAccount)
	} else {
		notifyAccount(&actorAccount, models.Notification{
			Kind:  models.NotificationFollowDeclined,
			Actor: target,
		})
		store.Accounts.Save(actorAccount)
	}

	store.Accounts.Save(targetAccount)
	return nil
}

// UnfollowUser removes the edge on both sides. Not following is a no-op
// success.
func UnfollowUser(actor, target string) error {
	graphMu.Lock()
	defer graphMu.Unlock()

	actorAccount, err := store.Accounts.Get(actor)
	if err != nil {
		return ErrNoSuchAccount
	}
	targetAccount, err := store.Accounts.Get(target)
	if err != nil {
		return ErrNoSuchAccount
	}

	actorAccount.Following = lo.Without(actorAccount.Following, target)
	targetAccount.Followers = lo.Without(targetAccount.Followers, actor)

	store.Accounts.Save(actorAccount)
	store.Accounts.Save(targetAccount)
	return nil
}

// BlockUser records the directional block and severs any follow state
// between the two accounts in both directions, pending requests
// included. Blocking always wins.
func BlockUser(actor, target string) error {
	graphMu.Lock()
	defer graphMu.Unlock()

	actorAccount, err := store.Accounts.Get(actor)
	if err != nil {
		return ErrNoSuchAccount
	}
	targetAccount, err := store.Accounts.Get(target)
	if err != nil {
		return ErrNoSuchAccount
	}

	if !actorAccount.Blocks(target) {
		actorAccount.Blocked = append(actorAccount.Blocked, target)
	}

	actorAccount.Following = lo.Without(actorAccount.Following, target)
	actorAccount.Followers = lo.Without(actorAccount.Followers, target)
	actorAccount.PendingRequests = lo.Without(actorAccount.PendingRequests, target)
	targetAccount.Following = lo.Without(targetAccount.Following, actor)
	targetAccount.Followers = lo.Without(targetAccount.Followers, actor)
	targetAccount.PendingRequests = lo.Without(targetAccount.PendingRequests, actor)

	store.Accounts.Save(actorAccount)
	store.Accounts.Save(targetAccount)
	log.Debug().Str("actor", actor).Str("target", target).Msg("Blocked an account.")
	return nil
}

// UnblockUser lifts the block; it never restores severed edges.
func UnblockUser(actor, target string) error {
	graphMu.Lock()
	defer graphMu.Unlock()

	actorAccount, err := store.Accounts.Get(actor)
	if err != nil {
		return ErrNoSuchAccount
	}

	actorAccount.Blocked = lo.Without(actorAccount.Blocked, target)
	store.Accounts.Save(actorAccount)
	return nil
}

// CanView is the single visibility gate for profile and post access. It
// is derived from account state on every call, never cached.
func CanView(viewer, owner models.Account) bool {
	if owner.IsPublic {
		return true
	}
	if viewer.Username == owner.Username {
		return true
	}
	return viewer.Follows(owner.Username)
}

// CommonFollowing intersects the two accounts' following sets.
func CommonFollowing(a, b models.Account) []string {
	return lo.Intersect(a.Following, b.Following)
}

func establishFollowEdge(actor, target *models.Account) {
	if !actor.Follows(target.Username) {
		actor.Following = append(actor.Following, target.Username)
	}
	if !target.FollowedBy(actor.Username) {
		target.Followers = append(target.Followers, actor.Username)
	}
}
