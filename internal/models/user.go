package models

// User is the only persisted entity. PasswordHash never leaves the server.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// UserPatch carries a partial update; nil fields are left unchanged.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
}
