package database

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"
)

// EnsureAdminUser creates the 'admin' account, or resets its password when it
// already exists. Called at startup when -admin-password is set.
func EnsureAdminUser(db *sql.DB, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO user (username, password_hash, first_name, last_name, email, role)
		VALUES ('admin', ?, 'System', 'Administrator', '', 'admin')
		ON CONFLICT (username)
		DO UPDATE SET password_hash = excluded.password_hash`,
		string(hash),
	)
	return err
}
