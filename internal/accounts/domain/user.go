package domain

type User struct {
	ID           int64
	Username     string // unique, immutable
	Email        string // unique, immutable
	PasswordHash string // hex(salt) || hex(pbkdf2 key)
}
