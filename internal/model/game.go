package model

// Game represents a campaign run by a dungeon master.
type Game struct {
	ID            string  `json:"id"`
	GameName      string  `json:"gameName"`
	DungeonMaster string  `json:"dungeonMaster"`
	Description   *string `json:"description,omitempty"`

	// Players and Characters are id lists supplied by callers; deleting a
	// user or character leaves stale ids behind (documented limitation).
	Players    []string `json:"players"`
	Characters []string `json:"characters"`
}
