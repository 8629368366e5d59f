package service

import (
	"context"

	"github.com/questforge/grimoire/api/internal/model"
)

// GameRepository defines the interface for game storage
type GameRepository interface {
	List(ctx context.Context) ([]*model.Game, error)
	GetByID(ctx context.Context, id string) (*model.Game, error)
	Create(ctx context.Context, game *model.Game) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Game, error)
	Delete(ctx context.Context, id string) (*model.Game, error)
}

// GameService handles campaign CRUD. Player and character membership is
// supplied by callers as explicit id lists; only the dungeon master
// reference is verified at write time.
type GameService struct {
	repo     GameRepository
	userRepo UserRepository
}

// GameServiceConfig holds configuration for the game service
type GameServiceConfig struct {
	GameRepo GameRepository
	UserRepo UserRepository
}

// NewGameService creates a new game service
func NewGameService(cfg GameServiceConfig) *GameService {
	return &GameService{
		repo:     cfg.GameRepo,
		userRepo: cfg.UserRepo,
	}
}

// GameCreateInput requires a name and a dungeon master; membership lists
// are optional and default to empty.
type GameCreateInput struct {
	GameName      string
	DungeonMaster string
	Players       []string
	Characters    []string
	Description   *string
}

// GameUpdateInput is a partial update; nil fields are left untouched.
type GameUpdateInput struct {
	GameName      *string
	DungeonMaster *string
	Players       []string
	Characters    []string
	Description   *string
}

// List returns all games.
func (s *GameService) List(ctx context.Context) ([]*model.Game, error) {
	games, err := s.repo.List(ctx)
	if err != nil {
		return nil, dependency("fetch", "games", err)
	}
	return games, nil
}

// GetByID returns the game with the given id.
func (s *GameService) GetByID(ctx context.Context, id string) (*model.Game, error) {
	game, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, dependency("fetch", "game", err)
	}
	if game == nil {
		return nil, notFound("Game")
	}
	return game, nil
}

// Create persists a new game after verifying the dungeon master exists.
func (s *GameService) Create(ctx context.Context, input GameCreateInput) (*model.Game, error) {
	if err := validateGameCreate(input); err != nil {
		return nil, err
	}

	dm, err := s.userRepo.GetByID(ctx, input.DungeonMaster)
	if err != nil {
		return nil, dependency("fetch", "user", err)
	}
	if dm == nil {
		return nil, notFound("User")
	}

	players := input.Players
	if players == nil {
		players = []string{}
	}
	characters := input.Characters
	if characters == nil {
		characters = []string{}
	}

	game := &model.Game{
		GameName:      input.GameName,
		DungeonMaster: input.DungeonMaster,
		Players:       players,
		Characters:    characters,
		Description:   input.Description,
	}
	if err := s.repo.Create(ctx, game); err != nil {
		return nil, dependency("create", "game", err)
	}
	return game, nil
}

// Update applies a partial merge to an existing game. The game must exist;
// a supplied dungeon master must reference an existing user.
func (s *GameService) Update(ctx context.Context, id string, input GameUpdateInput) (*model.Game, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, dependency("fetch", "game", err)
	}
	if existing == nil {
		return nil, notFound("Game")
	}

	if err := validateGameUpdate(input); err != nil {
		return nil, err
	}

	if input.DungeonMaster != nil {
		dm, err := s.userRepo.GetByID(ctx, *input.DungeonMaster)
		if err != nil {
			return nil, dependency("fetch", "user", err)
		}
		if dm == nil {
			return nil, notFound("User")
		}
	}

	fields := map[string]interface{}{}
	if input.GameName != nil {
		fields["gameName"] = *input.GameName
	}
	if input.DungeonMaster != nil {
		fields["dungeonMaster"] = *input.DungeonMaster
	}
	if input.Players != nil {
		fields["players"] = input.Players
	}
	if input.Characters != nil {
		fields["characters"] = input.Characters
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}

	updated, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, dependency("update", "game", err)
	}
	if updated == nil {
		return nil, notFound("Game")
	}
	return updated, nil
}

// Delete removes the game and returns the deleted record. Characters keep
// any stale game ids in their games lists.
func (s *GameService) Delete(ctx context.Context, id string) (*model.Game, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, dependency("delete", "game", err)
	}
	if deleted == nil {
		return nil, notFound("Game")
	}
	return deleted, nil
}
