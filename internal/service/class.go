package service

import (
	"context"

	"github.com/questforge/grimoire/api/internal/model"
)

// ClassRepository defines the interface for class storage
type ClassRepository interface {
	List(ctx context.Context) ([]*model.Class, error)
	GetByID(ctx context.Context, id string) (*model.Class, error)
	Create(ctx context.Context, class *model.Class) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Class, error)
	Delete(ctx context.Context, id string) (*model.Class, error)
}

// ClassService handles character class CRUD.
type ClassService struct {
	repo ClassRepository
}

// ClassServiceConfig holds configuration for the class service
type ClassServiceConfig struct {
	ClassRepo ClassRepository
}

// NewClassService creates a new class service
func NewClassService(cfg ClassServiceConfig) *ClassService {
	return &ClassService{repo: cfg.ClassRepo}
}

// ProficienciesInput mirrors model.Proficiencies for create/update payloads.
type ProficienciesInput struct {
	Armor   []string
	Weapons []string
}

// ClassCreateInput requires every field; classes are complete templates.
type ClassCreateInput struct {
	Name           string
	Description    string
	HitDie         string
	PrimaryAbility string
	SavingThrow    []string
	Proficiencies  *ProficienciesInput
}

// ClassUpdateInput is a partial update; nil fields are left untouched.
type ClassUpdateInput struct {
	Name           *string
	Description    *string
	HitDie         *string
	PrimaryAbility *string
	SavingThrow    []string
	Proficiencies  *ProficienciesInput
}

// List returns all classes.
func (s *ClassService) List(ctx context.Context) ([]*model.Class, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, dependency("fetch", "classes", err)
	}
	return classes, nil
}

// GetByID returns the class with the given id.
func (s *ClassService) GetByID(ctx context.Context, id string) (*model.Class, error) {
	class, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, dependency("fetch", "class", err)
	}
	if class == nil {
		return nil, notFound("Class")
	}
	return class, nil
}

// Create persists a new class from a fully specified input.
func (s *ClassService) Create(ctx context.Context, input ClassCreateInput) (*model.Class, error) {
	if err := validateClassCreate(input); err != nil {
		return nil, err
	}

	class := &model.Class{
		Name:           input.Name,
		Description:    input.Description,
		HitDie:         input.HitDie,
		PrimaryAbility: input.PrimaryAbility,
		SavingThrow:    input.SavingThrow,
		Proficiencies: model.Proficiencies{
			Armor:   input.Proficiencies.Armor,
			Weapons: input.Proficiencies.Weapons,
		},
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, dependency("create", "class", err)
	}
	return class, nil
}

// Update applies a partial merge to an existing class. The class must exist
// and at least one field must be supplied.
func (s *ClassService) Update(ctx context.Context, id string, input ClassUpdateInput) (*model.Class, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, dependency("fetch", "class", err)
	}
	if existing == nil {
		return nil, notFound("Class")
	}

	if err := validateClassUpdate(input); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.HitDie != nil {
		fields["hitDie"] = *input.HitDie
	}
	if input.PrimaryAbility != nil {
		fields["primaryAbility"] = *input.PrimaryAbility
	}
	if input.SavingThrow != nil {
		fields["savingThrow"] = input.SavingThrow
	}
	if input.Proficiencies != nil {
		fields["proficiencies"] = map[string]interface{}{
			"armor":   input.Proficiencies.Armor,
			"weapons": input.Proficiencies.Weapons,
		}
	}

	updated, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, dependency("update", "class", err)
	}
	if updated == nil {
		return nil, notFound("Class")
	}
	return updated, nil
}

// Delete removes the class and returns the deleted record. Characters typed
// by the class are not touched.
func (s *ClassService) Delete(ctx context.Context, id string) (*model.Class, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, dependency("delete", "class", err)
	}
	if deleted == nil {
		return nil, notFound("Class")
	}
	return deleted, nil
}
