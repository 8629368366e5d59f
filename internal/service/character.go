package service

import (
	"context"

	"github.com/questforge/grimoire/api/internal/model"
)

// CharacterRepository defines the interface for character storage
type CharacterRepository interface {
	List(ctx context.Context) ([]*model.Character, error)
	GetByID(ctx context.Context, id string) (*model.Character, error)
	Create(ctx context.Context, character *model.Character) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Character, error)
	Delete(ctx context.Context, id string) (*model.Character, error)
}

// CharacterService handles character sheet CRUD and enforces the write-time
// referential checks against users and classes.
type CharacterService struct {
	repo          CharacterRepository
	userRepo      UserRepository
	classRepo     ClassRepository
	relationships *RelationshipMaintainer
}

// CharacterServiceConfig holds configuration for the character service
type CharacterServiceConfig struct {
	CharacterRepo CharacterRepository
	UserRepo      UserRepository
	ClassRepo     ClassRepository
	Relationships *RelationshipMaintainer
}

// NewCharacterService creates a new character service
func NewCharacterService(cfg CharacterServiceConfig) *CharacterService {
	return &CharacterService{
		repo:          cfg.CharacterRepo,
		userRepo:      cfg.UserRepo,
		classRepo:     cfg.ClassRepo,
		relationships: cfg.Relationships,
	}
}

// Numeric input fields are float64 because that is how JSON numbers arrive;
// validation rejects fractional values before they are converted to ints.

// AttributesInput carries the six ability scores. All are required on
// create; on update only the supplied ones change.
type AttributesInput struct {
	Strength     *float64
	Dexterity    *float64
	Constitution *float64
	Intelligence *float64
	Wisdom       *float64
	Charisma     *float64
}

// SkillsInput carries the nine skill modifiers, each optional.
type SkillsInput struct {
	Acrobatics  *float64
	Athletics   *float64
	Stealth     *float64
	Arcana      *float64
	History     *float64
	Insight     *float64
	Perception  *float64
	Performance *float64
	Survival    *float64
}

type numericField struct {
	name  string
	value *float64
}

func (a *AttributesInput) fields() []numericField {
	return []numericField{
		{"strength", a.Strength},
		{"dexterity", a.Dexterity},
		{"constitution", a.Constitution},
		{"intelligence", a.Intelligence},
		{"wisdom", a.Wisdom},
		{"charisma", a.Charisma},
	}
}

func (s *SkillsInput) fields() []numericField {
	return []numericField{
		{"acrobatics", s.Acrobatics},
		{"athletics", s.Athletics},
		{"stealth", s.Stealth},
		{"arcana", s.Arcana},
		{"history", s.History},
		{"insight", s.Insight},
		{"perception", s.Perception},
		{"performance", s.Performance},
		{"survival", s.Survival},
	}
}

// CharacterCreateInput requires a complete sheet.
type CharacterCreateInput struct {
	CharacterName string
	UserID        string
	Race          string
	ClassID       string
	Level         *float64
	Attributes    *AttributesInput
	Skills        *SkillsInput
	Equipment     []string
	Spells        []string
	Games         []string
}

// CharacterUpdateInput is a partial update; nil fields are left untouched.
// Attribute and skill sub-fields merge individually.
type CharacterUpdateInput struct {
	CharacterName *string
	UserID        *string
	Race          *string
	ClassID       *string
	Level         *float64
	Attributes    *AttributesInput
	Skills        *SkillsInput
	Equipment     []string
	Spells        []string
	Games         []string
}

func (in *CharacterUpdateInput) hasFields() bool {
	return in.CharacterName != nil || in.UserID != nil || in.Race != nil ||
		in.ClassID != nil || in.Level != nil || in.Attributes != nil ||
		in.Skills != nil || in.Equipment != nil || in.Spells != nil ||
		in.Games != nil
}

// List returns all characters.
func (s *CharacterService) List(ctx context.Context) ([]*model.Character, error) {
	characters, err := s.repo.List(ctx)
	if err != nil {
		return nil, dependency("fetch", "characters", err)
	}
	return characters, nil
}

// GetByID returns the character with the given id.
func (s *CharacterService) GetByID(ctx context.Context, id string) (*model.Character, error) {
	character, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, dependency("fetch", "character", err)
	}
	if character == nil {
		return nil, notFound("Character")
	}
	return character, nil
}

// Create validates the full sheet, verifies the owning user and the class
// exist, persists the character, and then attaches the new character id to
// the owner's character list. The attach is best-effort: its failure never
// fails the create.
func (s *CharacterService) Create(ctx context.Context, input CharacterCreateInput) (*model.Character, error) {
	if err := validateCharacterCreate(input); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, dependency("fetch", "user", err)
	}
	if owner == nil {
		return nil, notFound("User")
	}

	class, err := s.classRepo.GetByID(ctx, input.ClassID)
	if err != nil {
		return nil, dependency("fetch", "class", err)
	}
	if class == nil {
		return nil, notFound("Class")
	}

	character := &model.Character{
		CharacterName: input.CharacterName,
		UserID:        input.UserID,
		Race:          input.Race,
		ClassID:       input.ClassID,
		Level:         int(*input.Level),
		Attributes: model.Attributes{
			Strength:     int(*input.Attributes.Strength),
			Dexterity:    int(*input.Attributes.Dexterity),
			Constitution: int(*input.Attributes.Constitution),
			Intelligence: int(*input.Attributes.Intelligence),
			Wisdom:       int(*input.Attributes.Wisdom),
			Charisma:     int(*input.Attributes.Charisma),
		},
		Skills:    skillsFromInput(input.Skills),
		Equipment: input.Equipment,
		Spells:    input.Spells,
		Games:     input.Games,
	}
	if err := s.repo.Create(ctx, character); err != nil {
		return nil, dependency("create", "character", err)
	}

	s.relationships.AttachCharacterToOwner(ctx, character.UserID, character.ID)

	return character, nil
}

// Update applies a partial merge to the character. Attribute and skill
// sub-objects merge field by field.
func (s *CharacterService) Update(ctx context.Context, id string, input CharacterUpdateInput) (*model.Character, error) {
	if err := validateCharacterUpdate(id, input); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.CharacterName != nil {
		fields["characterName"] = *input.CharacterName
	}
	if input.UserID != nil {
		fields["userId"] = *input.UserID
	}
	if input.Race != nil {
		fields["race"] = *input.Race
	}
	if input.ClassID != nil {
		fields["class"] = *input.ClassID
	}
	if input.Level != nil {
		fields["level"] = int(*input.Level)
	}
	if input.Attributes != nil {
		fields["attributes"] = numericFieldMap(input.Attributes.fields())
	}
	if input.Skills != nil {
		fields["skills"] = numericFieldMap(input.Skills.fields())
	}
	if input.Equipment != nil {
		fields["equipment"] = input.Equipment
	}
	if input.Spells != nil {
		fields["spells"] = input.Spells
	}
	if input.Games != nil {
		fields["games"] = input.Games
	}

	updated, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, dependency("update", "character", err)
	}
	if updated == nil {
		return nil, notFound("Character")
	}
	return updated, nil
}

// Delete removes the character and returns the deleted record. The id is
// not removed from the owning user's character list.
func (s *CharacterService) Delete(ctx context.Context, id string) (*model.Character, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, dependency("delete", "character", err)
	}
	if deleted == nil {
		return nil, notFound("Character")
	}
	return deleted, nil
}

func skillsFromInput(input *SkillsInput) model.Skills {
	return model.Skills{
		Acrobatics:  toIntPtr(input.Acrobatics),
		Athletics:   toIntPtr(input.Athletics),
		Stealth:     toIntPtr(input.Stealth),
		Arcana:      toIntPtr(input.Arcana),
		History:     toIntPtr(input.History),
		Insight:     toIntPtr(input.Insight),
		Perception:  toIntPtr(input.Perception),
		Performance: toIntPtr(input.Performance),
		Survival:    toIntPtr(input.Survival),
	}
}

func toIntPtr(v *float64) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

// numericFieldMap builds the partial sub-object for a merge update,
// containing only the supplied fields.
func numericFieldMap(fields []numericField) map[string]interface{} {
	m := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		if f.value != nil {
			m[f.name] = int(*f.value)
		}
	}
	return m
}
