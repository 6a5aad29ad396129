package models

type User struct {
	ID           string `json:"_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don’t expose hash
}
