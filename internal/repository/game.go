package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/questforge/grimoire/api/internal/database"
	"github.com/questforge/grimoire/api/internal/model"
)

// GameRepository handles game data access
type GameRepository struct {
	db database.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db database.Database) *GameRepository {
	return &GameRepository{db: db}
}

// List retrieves all games
func (r *GameRepository) List(ctx context.Context) ([]*model.Game, error) {
	result, err := r.db.Query(ctx, `SELECT * FROM game`, nil)
	if err != nil {
		return nil, err
	}

	records := listRecords(result)
	games := make([]*model.Game, 0, len(records))
	for _, data := range records {
		games = append(games, gameFromData(data))
	}
	return games, nil
}

// GetByID retrieves a game by ID
func (r *GameRepository) GetByID(ctx context.Context, id string) (*model.Game, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := recordData(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return gameFromData(data), nil
}

// Create creates a new game. The game's ID is filled in from the created
// record.
func (r *GameRepository) Create(ctx context.Context, game *model.Game) error {
	query := `
		CREATE game CONTENT {
			gameName: $gameName,
			dungeonMaster: $dungeonMaster,
			description: IF $description IS NOT NULL THEN $description ELSE NONE END,
			players: $players,
			characters: $characters
		}
	`

	vars := map[string]interface{}{
		"gameName":      game.GameName,
		"dungeonMaster": game.DungeonMaster,
		"description":   ptrOrNil(game.Description),
		"players":       emptyIfNil(game.Players),
		"characters":    emptyIfNil(game.Characters),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: game name already exists", database.ErrDuplicate)
		}
		return err
	}

	records := listRecords(result)
	if len(records) == 0 {
		return errors.New("no result returned")
	}
	game.ID = convertRecordID(records[0]["id"])
	return nil
}

// UpdateFields applies a partial merge update and returns the updated
// record, or (nil, nil) if no such game exists.
func (r *GameRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Game, error) {
	query := `UPDATE type::record($id) MERGE $data RETURN AFTER`
	vars := map[string]interface{}{
		"id":   id,
		"data": fields,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := recordData(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return gameFromData(data), nil
}

// Delete removes a game and returns the deleted record, or (nil, nil) if
// no such game exists.
func (r *GameRepository) Delete(ctx context.Context, id string) (*model.Game, error) {
	query := `DELETE type::record($id) RETURN BEFORE`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := recordData(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return gameFromData(data), nil
}

func gameFromData(data map[string]interface{}) *model.Game {
	return &model.Game{
		ID:            convertRecordID(data["id"]),
		GameName:      getString(data, "gameName"),
		DungeonMaster: getString(data, "dungeonMaster"),
		Description:   getStringPtr(data, "description"),
		Players:       getStringSlice(data, "players"),
		Characters:    getStringSlice(data, "characters"),
	}
}
