package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/questforge/grimoire/api/internal/database"
	"github.com/questforge/grimoire/api/internal/model"
)

// ClassRepository handles character class data access
type ClassRepository struct {
	db database.Database
}

// NewClassRepository creates a new class repository
func NewClassRepository(db database.Database) *ClassRepository {
	return &ClassRepository{db: db}
}

// List retrieves all classes
func (r *ClassRepository) List(ctx context.Context) ([]*model.Class, error) {
	result, err := r.db.Query(ctx, `SELECT * FROM class`, nil)
	if err != nil {
		return nil, err
	}

	records := listRecords(result)
	classes := make([]*model.Class, 0, len(records))
	for _, data := range records {
		classes = append(classes, classFromData(data))
	}
	return classes, nil
}

// GetByID retrieves a class by ID
func (r *ClassRepository) GetByID(ctx context.Context, id string) (*model.Class, error) {
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
	return classFromData(data), nil
}

// Create creates a new class. The class's ID is filled in from the
// created record.
func (r *ClassRepository) Create(ctx context.Context, class *model.Class) error {
	query := `
		CREATE class CONTENT {
			name: $name,
			description: $description,
			hitDie: $hitDie,
			primaryAbility: $primaryAbility,
			savingThrow: $savingThrow,
			proficiencies: $proficiencies
		}
	`

	vars := map[string]interface{}{
		"name":           class.Name,
		"description":    class.Description,
		"hitDie":         class.HitDie,
		"primaryAbility": class.PrimaryAbility,
		"savingThrow":    class.SavingThrow,
		"proficiencies": map[string]interface{}{
			"armor":   class.Proficiencies.Armor,
			"weapons": class.Proficiencies.Weapons,
		},
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: class name already exists", database.ErrDuplicate)
		}
		return err
	}

	records := listRecords(result)
	if len(records) == 0 {
		return errors.New("no result returned")
	}
	class.ID = convertRecordID(records[0]["id"])
	return nil
}

// UpdateFields applies a partial merge update and returns the updated
// record, or (nil, nil) if no such class exists.
func (r *ClassRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Class, error) {
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
	return classFromData(data), nil
}

// Delete removes a class and returns the deleted record, or (nil, nil)
// if no such class exists.
func (r *ClassRepository) Delete(ctx context.Context, id string) (*model.Class, error) {
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
	return classFromData(data), nil
}

func classFromData(data map[string]interface{}) *model.Class {
	proficiencies := getMap(data, "proficiencies")
	return &model.Class{
		ID:             convertRecordID(data["id"]),
		Name:           getString(data, "name"),
		Description:    getString(data, "description"),
		HitDie:         getString(data, "hitDie"),
		PrimaryAbility: getString(data, "primaryAbility"),
		SavingThrow:    getStringSlice(data, "savingThrow"),
		Proficiencies: model.Proficiencies{
			Armor:   getStringSlice(proficiencies, "armor"),
			Weapons: getStringSlice(proficiencies, "weapons"),
		},
	}
}
