package store

import (
	"database/sql"
	"fmt"

	"loadtrack/internal/model"
)

// InsertUser creates an operator account.
func (s *Store) InsertUser(u *model.User) error {
	res, err := s.db.Exec(
		`INSERT INTO users (username, password_hash, full_name) VALUES (?, ?, ?)`,
		u.Username, u.PasswordHash, u.FullName,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID, _ = res.LastInsertId()
	return nil
}

// UserByUsername looks up an operator. Absent usernames return (nil, nil).
func (s *Store) UserByUsername(username string) (*model.User, error) {
	var u model.User
	var fullName sql.NullString
	err := s.db.QueryRow(
		`SELECT id, username, password_hash, full_name FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &fullName)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.FullName = fullName.String
	return &u, nil
}
