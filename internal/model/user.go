package model

import "time"

// User represents a player or dungeon master account.
type User struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Hash     *string `json:"-"` // Never expose password hash
	Gender   *string `json:"gender,omitempty"`

	// Characters is the ordered list of Character ids owned by this user.
	// Maintained on character creation; deletes do not detach.
	Characters []string `json:"characters"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
