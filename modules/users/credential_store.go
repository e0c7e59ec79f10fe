package users

import (
	"context"
	"errors"

	"github.com/gigledger/gigledger/modules/auth"
)

// CredentialStore adapts profile storage to the account lookup the login
// flow needs.
type CredentialStore struct {
	storage Storage
}

func NewCredentialStore(storage Storage) *CredentialStore {
	return &CredentialStore{storage: storage}
}

func (c *CredentialStore) FindByEmail(ctx context.Context, email string) (*auth.Account, error) {
	u, err := c.storage.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, err
	}
	return &auth.Account{
		ID:           u.ID.Hex(),
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		PasswordHash: u.PasswordHash,
	}, nil
}
