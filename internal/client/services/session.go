package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/repositories/storage"
	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/common"
	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/dbx"
)

// SessionStore persists the credential and the identity under two fixed keys.
// It also serves as the HTTP client's token source.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) repo() storage.Repository {
	return storage.NewSQLiteRepository(s.db)
}

// Token returns the stored credential, or "" when there is none.
func (s *SessionStore) Token(ctx context.Context) (string, error) {
	v, err := s.repo().Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SessionStore) SaveToken(ctx context.Context, token string) error {
	return s.repo().Set(ctx, common.TokenStorageKey, []byte(token))
}

// SaveIdentity stores the already serialized identity record.
func (s *SessionStore) SaveIdentity(ctx context.Context, identity []byte) error {
	return s.repo().Set(ctx, common.IdentityStorageKey, identity)
}

// Load reads both entries in one transaction. Missing entries come back empty.
func (s *SessionStore) Load(ctx context.Context) (token string, identity []byte, err error) {
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)

		t, err := repo.Get(ctx, common.TokenStorageKey)
		if err != nil {
			return err
		}
		identity, err = repo.Get(ctx, common.IdentityStorageKey)
		if err != nil {
			return err
		}
		token = string(t)
		return nil
	})
	if err != nil {
		return "", nil, fmt.Errorf("load session: %w", err)
	}
	return token, identity, nil
}

// Clear removes both entries atomically. Clearing an empty store is not an
// error.
func (s *SessionStore) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.TokenStorageKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.IdentityStorageKey)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
