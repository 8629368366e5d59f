package model

// Proficiencies lists the armor and weapon groups a class is trained in.
type Proficiencies struct {
	Armor   []string `json:"armor"`
	Weapons []string `json:"weapons"`
}

// Class represents a character class template (e.g., Barbarian, Wizard).
type Class struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	HitDie         string        `json:"hitDie"`
	PrimaryAbility string        `json:"primaryAbility"`
	SavingThrow    []string      `json:"savingThrow"`
	Proficiencies  Proficiencies `json:"proficiencies"`
}
