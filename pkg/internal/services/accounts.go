package services

import (
	"sort"
	"strings"

	"github.com/Eliott67/TwINSA/pkg/internal/auth"
	"github.com/Eliott67/TwINSA/pkg/internal/models"
	"github.com/Eliott67/TwINSA/pkg/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// CreateAccount registers a new user. Usernames and emails are both
// unique across the store.
func CreateAccount(username, email, password, name string, age *int, country string, isPublic bool) (models.Account, error) {
	graphMu.Lock()
	defer graphMu.Unlock()

	var account models.Account

	if store.Accounts.Exists(username) {
		return account, ErrUsernameTaken
	}
	if store.Accounts.ExistsByEmail(email) {
		return account, ErrEmailTaken
	}

	credentialRef, err := auth.HashCredential(password)
	if err != nil {
		return account, err
	}

	account = models.Account{
		Username:      username,
		Email:         email,
		CredentialRef: credentialRef,
		Name:          name,
		Age:           age,
		Country:       country,
		IsPublic:      isPublic,
		CreatedAt:     nowFunc(),
	}

	store.Accounts.Save(account)
	log.Info().Str("username", username).Msg("Account created.")
	return account, nil
}

// Authenticate verifies the password and returns the account on success.
func Authenticate(username, password string) (models.Account, error) {
	account, err := store.Accounts.Get(username)
	if err != nil {
		return account, ErrBadCredential
	}
	if !auth.VerifyCredential(account.CredentialRef, password) {
		return account, ErrBadCredential
	}
	return account, nil
}

// ProfileUpdate carries the editable profile fields; nil pointers leave
// the current value in place.
type ProfileUpdate struct {
	Name           *string
	Age            *int
	Country        *string
	IsPublic       *bool
	ProfilePicture *string
}

func UpdateProfile(username string, update ProfileUpdate) (models.Account, error) {
	graphMu.Lock()
	defer graphMu.Unlock()

	account, err := store.Accounts.Get(username)
	if err != nil {
		return account, ErrNoSuchAccount
	}

	if update.Name != nil {
		account.Name = *update.Name
	}
	if update.Age != nil {
		account.Age = update.Age
	}
	if update.Country != nil {
		account.Country = *update.Country
	}
	if update.IsPublic != nil {
		// Existing follow edges persist when an account goes private.
		account.IsPublic = *update.IsPublic
	}
	if update.ProfilePicture != nil {
		account.ProfilePicture = *update.ProfilePicture
	}

	store.Accounts.Save(account)
	return account, nil
}

// ChangePassword rotates the credential ref after checking the old
// password.
func ChangePassword(username, oldPassword, newPassword string) error {
	account, err := store.Accounts.Get(username)
	if err != nil {
		return ErrNoSuchAccount
	}
	if !auth.VerifyCredential(account.CredentialRef, oldPassword) {
		return ErrBadCredential
	}

	credentialRef, err := auth.HashCredential(newPassword)
	if err != nil {
		return err
	}
	account.CredentialRef = credentialRef
	store.Accounts.Save(account)
	return nil
}

// DeleteAccount removes the account, its posts, and purges its username
// from every other account's relationship lists.
func DeleteAccount(username string) error {
	graphMu.Lock()
	defer graphMu.Unlock()

	if !store.Accounts.Exists(username) {
		return ErrNoSuchAccount
	}

	store.Accounts.Delete(username)
	store.Posts.DeleteByAuthor(username)

	for _, account := range store.Accounts.GetAll() {
		dirty := account.FollowedBy(username) ||
			account.Follows(username) ||
			account.Blocks(username) ||
			account.HasPendingRequestFrom(username)
		if !dirty {
			continue
		}
		account.Followers = lo.Without(account.Followers, username)
		account.Following = lo.Without(account.Following, username)
		account.Blocked = lo.Without(account.Blocked, username)
		account.PendingRequests = lo.Without(account.PendingRequests, username)
		store.Accounts.Save(account)
	}

	log.Info().Str("username", username).Msg("Account deleted.")
	return nil
}

const searchResultLimit = 10

// SearchAccounts matches usernames by case-insensitive prefix, listing
// accounts the viewer already follows first, then alphabetically.
func SearchAccounts(viewer models.Account, query string) []models.Account {
	query = strings.ToLower(query)

	matches := lo.Filter(store.Accounts.GetAll(), func(account models.Account, _ int) bool {
		return strings.HasPrefix(strings.ToLower(account.Username), query)
	})

	sort.SliceStable(matches, func(i, j int) bool {
		iFollowed := viewer.Follows(matches[i].Username)
		jFollowed := viewer.Follows(matches[j].Username)
		if iFollowed != jFollowed {
			return iFollowed
		}
		return strings.ToLower(matches[i].Username) < strings.ToLower(matches[j].Username)
	})

	if len(matches) > searchResultLimit {
		matches = matches[:searchResultLimit]
	}
	return matches
}

// IssueResetToken mints and stores a reset token for the account
// matching the email. Delivery is out of scope; the token is logged for
// now, mirroring the console delivery of the reference deployment.
func IssueResetToken(email string) (string, error) {
	graphMu.Lock()
	defer graphMu.Unlock()

	account, err := store.Accounts.GetByEmail(email)
	if err != nil {
		return "", ErrNoSuchAccount
	}

	account.ResetToken = auth.NewResetToken()
	store.Accounts.Save(account)
	log.Info().Str("username", account.Username).Msg("Issued a password reset token.")
	return account.ResetToken, nil
}

// ResetPassword consumes a previously issued token and sets a new
// password.
func ResetPassword(email, token, newPassword string) error {
	graphMu.Lock()
	defer graphMu.Unlock()

	account, err := store.Accounts.GetByEmail(email)
	if err != nil {
		return ErrNoSuchAccount
	}
	if len(account.ResetToken) == 0 || account.ResetToken != token {
		return ErrBadCredential
	}

	credentialRef, err := auth.HashCredential(newPassword)
	if err != nil {
		return err
	}
	account.CredentialRef = credentialRef
	account.ResetToken = ""
	store.Accounts.Save(account)
	return nil
}
