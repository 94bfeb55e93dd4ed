package models

import "time"

// User represents a registered account.
type User struct {
	ID           string     `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null" bson:"username" json:"username"`
	Email        string     `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash string     `gorm:"not null" bson:"passwordHash" json:"-"`
	LastLogin    *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the subset of a user that is safe to hand back to clients.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}
