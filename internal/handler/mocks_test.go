package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/questforge/grimoire/api/internal/model"
	"github.com/questforge/grimoire/api/internal/service"
	"github.com/questforge/grimoire/api/internal/testing/helpers"
)

// ============================================================================
// Stub Repositories
// ============================================================================

// Handlers take concrete services, so tests drive real services over stubbed
// repositories. Unset functions return (nil, nil): absent record, no error.

type stubUserRepo struct {
	listFunc            func(ctx context.Context) ([]*model.User, error)
	getByIDFunc         func(ctx context.Context, id string) (*model.User, error)
	getByEmailFunc      func(ctx context.Context, email string) (*model.User, error)
	getByUsernameFunc   func(ctx context.Context, username string) (*model.User, error)
	createFunc          func(ctx context.Context, user *model.User) error
	updateFieldsFunc    func(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error)
	deleteFunc          func(ctx context.Context, id string) (*model.User, error)
	attachCharacterFunc func(ctx context.Context, userID, characterID string) error
}

func (s *stubUserRepo) List(ctx context.Context) ([]*model.User, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx)
	}
	return []*model.User{}, nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.getByEmailFunc != nil {
		return s.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if s.getByUsernameFunc != nil {
		return s.getByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error {
	if s.createFunc != nil {
		return s.createFunc(ctx, user)
	}
	user.ID = "user:stub"
	return nil
}

func (s *stubUserRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error) {
	if s.updateFieldsFunc != nil {
		return s.updateFieldsFunc(ctx, id, fields)
	}
	return nil, nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id string) (*model.User, error) {
	if s.deleteFunc != nil {
		return s.deleteFunc(ctx, id)
	}
	return nil, nil
}

func (s *stubUserRepo) AttachCharacter(ctx context.Context, userID, characterID string) error {
	if s.attachCharacterFunc != nil {
		return s.attachCharacterFunc(ctx, userID, characterID)
	}
	return nil
}

type stubClassRepo struct {
	listFunc         func(ctx context.Context) ([]*model.Class, error)
	getByIDFunc      func(ctx context.Context, id string) (*model.Class, error)
	createFunc       func(ctx context.Context, class *model.Class) error
	updateFieldsFunc func(ctx context.Context, id string, fields map[string]interface{}) (*model.Class, error)
	deleteFunc       func(ctx context.Context, id string) (*model.Class, error)
}

func (s *stubClassRepo) List(ctx context.Context) ([]*model.Class, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx)
	}
	return []*model.Class{}, nil
}

func (s *stubClassRepo) GetByID(ctx context.Context, id string) (*model.Class, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (s *stubClassRepo) Create(ctx context.Context, class *model.Class) error {
	if s.createFunc != nil {
		return s.createFunc(ctx, class)
	}
	class.ID = "class:stub"
	return nil
}

func (s *stubClassRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Class, error) {
	if s.updateFieldsFunc != nil {
		return s.updateFieldsFunc(ctx, id, fields)
	}
	return nil, nil
}

func (s *stubClassRepo) Delete(ctx context.Context, id string) (*model.Class, error) {
	if s.deleteFunc != nil {
		return s.deleteFunc(ctx, id)
	}
	return nil, nil
}

type stubCharacterRepo struct {
	listFunc         func(ctx context.Context) ([]*model.Character, error)
	getByIDFunc      func(ctx context.Context, id string) (*model.Character, error)
	createFunc       func(ctx context.Context, character *model.Character) error
	updateFieldsFunc func(ctx context.Context, id string, fields map[string]interface{}) (*model.Character, error)
	deleteFunc       func(ctx context.Context, id string) (*model.Character, error)
}

func (s *stubCharacterRepo) List(ctx context.Context) ([]*model.Character, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx)
	}
	return []*model.Character{}, nil
}

func (s *stubCharacterRepo) GetByID(ctx context.Context, id string) (*model.Character, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (s *stubCharacterRepo) Create(ctx context.Context, character *model.Character) error {
	if s.createFunc != nil {
		return s.createFunc(ctx, character)
	}
	character.ID = "character:stub"
	return nil
}

func (s *stubCharacterRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Character, error) {
	if s.updateFieldsFunc != nil {
		return s.updateFieldsFunc(ctx, id, fields)
	}
	return nil, nil
}

func (s *stubCharacterRepo) Delete(ctx context.Context, id string) (*model.Character, error) {
	if s.deleteFunc != nil {
		return s.deleteFunc(ctx, id)
	}
	return nil, nil
}

type stubGameRepo struct {
	listFunc         func(ctx context.Context) ([]*model.Game, error)
	getByIDFunc      func(ctx context.Context, id string) (*model.Game, error)
	createFunc       func(ctx context.Context, game *model.Game) error
	updateFieldsFunc func(ctx context.Context, id string, fields map[string]interface{}) (*model.Game, error)
	deleteFunc       func(ctx context.Context, id string) (*model.Game, error)
}

func (s *stubGameRepo) List(ctx context.Context) ([]*model.Game, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx)
	}
	return []*model.Game{}, nil
}

func (s *stubGameRepo) GetByID(ctx context.Context, id string) (*model.Game, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (s *stubGameRepo) Create(ctx context.Context, game *model.Game) error {
	if s.createFunc != nil {
		return s.createFunc(ctx, game)
	}
	game.ID = "game:stub"
	return nil
}

func (s *stubGameRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Game, error) {
	if s.updateFieldsFunc != nil {
		return s.updateFieldsFunc(ctx, id, fields)
	}
	return nil, nil
}

func (s *stubGameRepo) Delete(ctx context.Context, id string) (*model.Game, error) {
	if s.deleteFunc != nil {
		return s.deleteFunc(ctx, id)
	}
	return nil, nil
}

// ============================================================================
// Test Helpers
// ============================================================================

func newTestUserService(t *testing.T, repo service.UserRepository) *service.UserService {
	t.Helper()
	credentials := service.NewCredentialService(helpers.NewTestJWTService(t))
	return service.NewUserService(service.UserServiceConfig{
		UserRepo:    repo,
		Credentials: credentials,
	})
}

func makeJSONRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseErrorResponse(t *testing.T, body []byte) *model.ProblemDetails {
	t.Helper()
	var problem model.ProblemDetails
	if err := json.Unmarshal(body, &problem); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	return &problem
}

func parseDataResponse(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var response struct {
		Data  map[string]interface{} `json:"data"`
		Links map[string]string      `json:"_links"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		t.Fatalf("failed to parse data response: %v", err)
	}
	return response.Data
}
