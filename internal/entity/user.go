// internal/entity/user.go

package entity

import "time"

// Gender values accepted by the server.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// User is the identity record shared across posts, messages, conversations
// and notifications. Related entities embed denormalized copies of it; the
// auth store owns the authoritative copy for the signed-in user.
type User struct {
	ID          string    `json:"_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Avatar      string    `json:"avatar,omitempty"`
	CoverPhoto  string    `json:"coverPhoto,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	DateOfBirth string    `json:"dateOfBirth,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	Location    string    `json:"location,omitempty"`
	Website     string    `json:"website,omitempty"`
	IsVerified  bool      `json:"isVerified"`
	IsOnline    bool      `json:"isOnline"`
	LastSeen    time.Time `json:"lastSeen,omitempty"`
	Friends     []string  `json:"friends,omitempty"`
	Followers   []string  `json:"followers,omitempty"`
	Following   []string  `json:"following,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DisplayName returns the user's full name, falling back to the username.
func (u User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
