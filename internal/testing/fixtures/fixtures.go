// Package fixtures provides test data factories for e2e testing.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories insert through the real
// repositories and return fully populated models.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	user := f.CreateUser(t)
//	class := f.CreateClass(t)
//	character := f.CreateCharacter(t, user, class)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/questforge/grimoire/api/internal/database"
	"github.com/questforge/grimoire/api/internal/model"
	"github.com/questforge/grimoire/api/internal/repository"
)

// Factory creates test entities in the database
type Factory struct {
	users      *repository.UserRepository
	classes    *repository.ClassRepository
	characters *repository.CharacterRepository
	games      *repository.GameRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		users:      repository.NewUserRepository(db),
		classes:    repository.NewClassRepository(db),
		characters: repository.NewCharacterRepository(db),
		games:      repository.NewGameRepository(db),
	}
}

// randomID generates a random hex suffix for unique names and emails
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// DefaultPassword is the plaintext behind every fixture user's hash.
const DefaultPassword = "hunter42"

// UserOption customizes a user fixture
type UserOption func(*model.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *model.User) { u.Email = email }
}

// WithUsername sets the user's username
func WithUsername(username string) UserOption {
	return func(u *model.User) { u.Username = username }
}

// CreateUser creates a user with a bcrypt hash of DefaultPassword.
func (f *Factory) CreateUser(t *testing.T, opts ...UserOption) *model.User {
	t.Helper()

	suffix := randomID()
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}
	hashStr := string(hash)

	user := &model.User{
		Username:   "adventurer-" + suffix,
		Email:      fmt.Sprintf("player-%s@example.com", suffix),
		Hash:       &hashStr,
		Characters: []string{},
	}
	for _, opt := range opts {
		opt(user)
	}

	c, cancel := ctx()
	defer cancel()
	if err := f.users.Create(c, user); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}
	return user
}

// ClassOption customizes a class fixture
type ClassOption func(*model.Class)

// WithClassName sets the class name
func WithClassName(name string) ClassOption {
	return func(c *model.Class) { c.Name = name }
}

// CreateClass creates a class template.
func (f *Factory) CreateClass(t *testing.T, opts ...ClassOption) *model.Class {
	t.Helper()

	class := &model.Class{
		Name:           "Barbarian-" + randomID(),
		Description:    "A fierce warrior of primitive background",
		HitDie:         "d12",
		PrimaryAbility: "Strength",
		SavingThrow:    []string{"Strength", "Constitution"},
		Proficiencies: model.Proficiencies{
			Armor:   []string{"light", "medium", "shields"},
			Weapons: []string{"simple", "martial"},
		},
	}
	for _, opt := range opts {
		opt(class)
	}

	c, cancel := ctx()
	defer cancel()
	if err := f.classes.Create(c, class); err != nil {
		t.Fatalf("fixtures: failed to create class: %v", err)
	}
	return class
}

// CharacterOption customizes a character fixture
type CharacterOption func(*model.Character)

// WithCharacterName sets the character name
func WithCharacterName(name string) CharacterOption {
	return func(c *model.Character) { c.CharacterName = name }
}

// WithLevel sets the character level
func WithLevel(level int) CharacterOption {
	return func(c *model.Character) { c.Level = level }
}

// CreateCharacter creates a character owned by user and typed by class.
// The character id is not attached to the owner's list; use the service
// layer when that behavior is under test.
func (f *Factory) CreateCharacter(t *testing.T, user *model.User, class *model.Class, opts ...CharacterOption) *model.Character {
	t.Helper()

	character := &model.Character{
		CharacterName: "Grog-" + randomID(),
		UserID:        user.ID,
		Race:          "Half-Orc",
		ClassID:       class.ID,
		Level:         1,
		Attributes: model.Attributes{
			Strength:     16,
			Dexterity:    12,
			Constitution: 14,
			Intelligence: 8,
			Wisdom:       10,
			Charisma:     13,
		},
		Equipment: []string{"greataxe", "explorer's pack"},
		Spells:    []string{},
		Games:     []string{},
	}
	for _, opt := range opts {
		opt(character)
	}

	c, cancel := ctx()
	defer cancel()
	if err := f.characters.Create(c, character); err != nil {
		t.Fatalf("fixtures: failed to create character: %v", err)
	}
	return character
}

// GameOption customizes a game fixture
type GameOption func(*model.Game)

// WithGameName sets the game name
func WithGameName(name string) GameOption {
	return func(g *model.Game) { g.GameName = name }
}

// CreateGame creates a game with dm as the dungeon master.
func (f *Factory) CreateGame(t *testing.T, dm *model.User, opts ...GameOption) *model.Game {
	t.Helper()

	description := "A weekly campaign through the Sword Coast"
	game := &model.Game{
		GameName:      "Curse of Strahd " + randomID(),
		DungeonMaster: dm.ID,
		Description:   &description,
		Players:       []string{},
		Characters:    []string{},
	}
	for _, opt := range opts {
		opt(game)
	}

	c, cancel := ctx()
	defer cancel()
	if err := f.games.Create(c, game); err != nil {
		t.Fatalf("fixtures: failed to create game: %v", err)
	}
	return game
}
