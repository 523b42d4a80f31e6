package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/proximark/server/internal/attendance/store"
	dbpkg "github.com/proximark/server/internal/db"
)

type UserStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewUserStore(db *sql.DB, writer *dbpkg.Worker) *UserStore {
	return &UserStore{db: db, writer: writer}
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (store.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u store.User
	err := s.db.QueryRowContext(ctx, `
SELECT user_id, name, email, password_hash, role
FROM users WHERE email = ?;
`, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role)
	if err == sql.ErrNoRows {
		return store.User{}, store.ErrUserNotFound
	}
	if err != nil {
		return store.User{}, fmt.Errorf("GetByEmail: %w", err)
	}
	return u, nil
}
