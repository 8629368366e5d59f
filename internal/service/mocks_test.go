package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/questforge/grimoire/api/internal/model"
	"github.com/questforge/grimoire/api/pkg/jwt"
)

// In-memory repository mocks. Each mock applies merge updates the way the
// real store does: supplied fields overwrite, everything else is kept, and
// an unknown id yields (nil, nil).

type mockUserRepo struct {
	users map[string]*model.User

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error
	attachErr error

	attached   [][2]string
	lastFields map[string]interface{}
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]*model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, u)
	}
	return result, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.users[id], nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = "user:" + user.Username
	user.CreatedOn = time.Now()
	user.UpdatedOn = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.lastFields = fields
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["username"].(string); ok {
		user.Username = v
	}
	if v, ok := fields["email"].(string); ok {
		user.Email = v
	}
	if v, ok := fields["gender"].(string); ok {
		user.Gender = &v
	}
	if v, ok := fields["hash"].(string); ok {
		user.Hash = &v
	}
	user.UpdatedOn = time.Now()
	return user, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) (*model.User, error) {
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	delete(m.users, id)
	return user, nil
}

func (m *mockUserRepo) AttachCharacter(ctx context.Context, userID, characterID string) error {
	if m.attachErr != nil {
		return m.attachErr
	}
	m.attached = append(m.attached, [2]string{userID, characterID})
	if user, ok := m.users[userID]; ok {
		for _, existing := range user.Characters {
			if existing == characterID {
				return nil
			}
		}
		user.Characters = append(user.Characters, characterID)
	}
	return nil
}

type mockClassRepo struct {
	classes map[string]*model.Class

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	lastFields map[string]interface{}
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{classes: make(map[string]*model.Class)}
}

func (m *mockClassRepo) List(ctx context.Context) ([]*model.Class, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]*model.Class, 0, len(m.classes))
	for _, c := range m.classes {
		result = append(result, c)
	}
	return result, nil
}

func (m *mockClassRepo) GetByID(ctx context.Context, id string) (*model.Class, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.classes[id], nil
}

func (m *mockClassRepo) Create(ctx context.Context, class *model.Class) error {
	if m.createErr != nil {
		return m.createErr
	}
	class.ID = "class:" + class.Name
	m.classes[class.ID] = class
	return nil
}

func (m *mockClassRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Class, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.lastFields = fields
	class, ok := m.classes[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["name"].(string); ok {
		class.Name = v
	}
	if v, ok := fields["description"].(string); ok {
		class.Description = v
	}
	if v, ok := fields["hitDie"].(string); ok {
		class.HitDie = v
	}
	if v, ok := fields["primaryAbility"].(string); ok {
		class.PrimaryAbility = v
	}
	if v, ok := fields["savingThrow"].([]string); ok {
		class.SavingThrow = v
	}
	return class, nil
}

func (m *mockClassRepo) Delete(ctx context.Context, id string) (*model.Class, error) {
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	class, ok := m.classes[id]
	if !ok {
		return nil, nil
	}
	delete(m.classes, id)
	return class, nil
}

type mockCharacterRepo struct {
	characters map[string]*model.Character

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	created    int
	lastFields map[string]interface{}
}

func newMockCharacterRepo() *mockCharacterRepo {
	return &mockCharacterRepo{characters: make(map[string]*model.Character)}
}

func (m *mockCharacterRepo) List(ctx context.Context) ([]*model.Character, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]*model.Character, 0, len(m.characters))
	for _, c := range m.characters {
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCharacterRepo) GetByID(ctx context.Context, id string) (*model.Character, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.characters[id], nil
}

func (m *mockCharacterRepo) Create(ctx context.Context, character *model.Character) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created++
	character.ID = "character:" + character.CharacterName
	m.characters[character.ID] = character
	return nil
}

func (m *mockCharacterRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Character, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.lastFields = fields
	character, ok := m.characters[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["characterName"].(string); ok {
		character.CharacterName = v
	}
	if v, ok := fields["level"].(int); ok {
		character.Level = v
	}
	if v, ok := fields["attributes"].(map[string]interface{}); ok {
		if s, ok := v["strength"].(int); ok {
			character.Attributes.Strength = s
		}
		if d, ok := v["dexterity"].(int); ok {
			character.Attributes.Dexterity = d
		}
	}
	return character, nil
}

func (m *mockCharacterRepo) Delete(ctx context.Context, id string) (*model.Character, error) {
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	character, ok := m.characters[id]
	if !ok {
		return nil, nil
	}
	delete(m.characters, id)
	return character, nil
}

type mockGameRepo struct {
	games map[string]*model.Game

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	lastFields map[string]interface{}
}

func newMockGameRepo() *mockGameRepo {
	return &mockGameRepo{games: make(map[string]*model.Game)}
}

func (m *mockGameRepo) List(ctx context.Context) ([]*model.Game, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]*model.Game, 0, len(m.games))
	for _, g := range m.games {
		result = append(result, g)
	}
	return result, nil
}

func (m *mockGameRepo) GetByID(ctx context.Context, id string) (*model.Game, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.games[id], nil
}

func (m *mockGameRepo) Create(ctx context.Context, game *model.Game) error {
	if m.createErr != nil {
		return m.createErr
	}
	game.ID = "game:" + game.GameName
	m.games[game.ID] = game
	return nil
}

func (m *mockGameRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Game, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.lastFields = fields
	game, ok := m.games[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["gameName"].(string); ok {
		game.GameName = v
	}
	if v, ok := fields["dungeonMaster"].(string); ok {
		game.DungeonMaster = v
	}
	if v, ok := fields["players"].([]string); ok {
		game.Players = v
	}
	return game, nil
}

func (m *mockGameRepo) Delete(ctx context.Context, id string) (*model.Game, error) {
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	game, ok := m.games[id]
	if !ok {
		return nil, nil
	}
	delete(m.games, id)
	return game, nil
}

// newTestCredentialService builds a credential service backed by an
// in-memory RSA key.
func newTestCredentialService(t *testing.T) *CredentialService {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate test RSA key: %v", err)
	}

	jwtService := jwt.NewTestService(privateKey, "test-issuer", 15*time.Minute)
	return NewCredentialService(jwtService)
}

// assertKind fails unless err is a service error of the given kind with the
// given message.
func assertKind(t *testing.T, err error, kind Kind, message string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := KindOf(err); got != kind {
		t.Fatalf("expected kind %s, got %s (%v)", kind, got, err)
	}
	if message != "" && err.Error() != message {
		t.Errorf("expected message %q, got %q", message, err.Error())
	}
}
