package models

// User is the database representation of a registered user.
type User struct {
	UserID       string `db:"user_id"`
	Email        string `db:"email"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	PasswordHash string `db:"password_hash"`
	Timestamps
}
