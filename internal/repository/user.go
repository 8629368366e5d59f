package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/questforge/grimoire/api/internal/database"
	"github.com/questforge/grimoire/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// List retrieves all users
func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	result, err := r.db.Query(ctx, `SELECT * FROM user`, nil)
	if err != nil {
		return nil, err
	}

	records := listRecords(result)
	users := make([]*model.User, 0, len(records))
	for _, data := range records {
		users = append(users, userFromData(data))
	}
	return users, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
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
	return userFromData(data), nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

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
	return userFromData(data), nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT * FROM user WHERE username = $username LIMIT 1`
	vars := map[string]interface{}{"username": username}

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
	return userFromData(data), nil
}

// Create creates a new user. The user's ID and timestamps are filled in
// from the created record.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			username: $username,
			email: $email,
			hash: IF $hash IS NOT NULL THEN $hash ELSE NONE END,
			gender: IF $gender IS NOT NULL THEN $gender ELSE NONE END,
			characters: $characters,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	characters := user.Characters
	if characters == nil {
		characters = []string{}
	}
	vars := map[string]interface{}{
		"username":   user.Username,
		"email":      user.Email,
		"hash":       ptrOrNil(user.Hash),
		"gender":     ptrOrNil(user.Gender),
		"characters": characters,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email or username already exists", database.ErrDuplicate)
		}
		return err
	}

	records := listRecords(result)
	if len(records) == 0 {
		return errors.New("no result returned")
	}
	created := userFromData(records[0])
	user.ID = created.ID
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// UpdateFields applies a partial merge update and returns the updated
// record, or (nil, nil) if no such user exists.
func (r *UserRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error) {
	merged := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updated_on"] = models.CustomDateTime{Time: time.Now().UTC()}

	query := `UPDATE type::record($id) MERGE $data RETURN AFTER`
	vars := map[string]interface{}{
		"id":   id,
		"data": merged,
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
	return userFromData(data), nil
}

// Delete removes a user and returns the deleted record, or (nil, nil) if
// no such user exists.
func (r *UserRepository) Delete(ctx context.Context, id string) (*model.User, error) {
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
	return userFromData(data), nil
}

// AttachCharacter adds a character id to the user's character list. The
// add is a set union, so repeating it is a no-op.
func (r *UserRepository) AttachCharacter(ctx context.Context, userID, characterID string) error {
	query := `
		UPDATE type::record($id) SET
			characters = array::union(characters ?? [], [$character]),
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":        userID,
		"character": characterID,
	}

	return r.db.Execute(ctx, query, vars)
}

func userFromData(data map[string]interface{}) *model.User {
	return &model.User{
		ID:         convertRecordID(data["id"]),
		Username:   getString(data, "username"),
		Email:      getString(data, "email"),
		Hash:       getStringPtr(data, "hash"),
		Gender:     getStringPtr(data, "gender"),
		Characters: getStringSlice(data, "characters"),
		CreatedOn:  parseTime(data["created_on"]),
		UpdatedOn:  parseTime(data["updated_on"]),
	}
}

// ptrOrNil converts a string pointer to either the string value or nil,
// for queries that check optional fields with IS NOT NULL.
func ptrOrNil(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
