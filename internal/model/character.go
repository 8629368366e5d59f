package model

// Attributes holds the six core ability scores. All are required on a
// character sheet.
type Attributes struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// Skills holds the trained skill modifiers. Each is optional; an absent
// skill means untrained.
type Skills struct {
	Acrobatics  *int `json:"acrobatics,omitempty"`
	Athletics   *int `json:"athletics,omitempty"`
	Stealth     *int `json:"stealth,omitempty"`
	Arcana      *int `json:"arcana,omitempty"`
	History     *int `json:"history,omitempty"`
	Insight     *int `json:"insight,omitempty"`
	Perception  *int `json:"perception,omitempty"`
	Performance *int `json:"performance,omitempty"`
	Survival    *int `json:"survival,omitempty"`
}

// Character represents a character sheet owned by a user.
type Character struct {
	ID            string     `json:"id"`
	CharacterName string     `json:"characterName"`
	UserID        string     `json:"userId"`
	Race          string     `json:"race"`
	ClassID       string     `json:"class"`
	Level         int        `json:"level"`
	Attributes    Attributes `json:"attributes"`
	Skills        Skills     `json:"skills"`
	Equipment     []string   `json:"equipment"`
	Spells        []string   `json:"spells"`

	// Games lists the Game ids this character participates in. Managed by
	// callers; there is no automatic propagation from Game membership.
	Games []string `json:"games"`
}
