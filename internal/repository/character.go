package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/questforge/grimoire/api/internal/database"
	"github.com/questforge/grimoire/api/internal/model"
)

// CharacterRepository handles character sheet data access
type CharacterRepository struct {
	db database.Database
}

// NewCharacterRepository creates a new character repository
func NewCharacterRepository(db database.Database) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// List retrieves all characters
func (r *CharacterRepository) List(ctx context.Context) ([]*model.Character, error) {
	result, err := r.db.Query(ctx, `SELECT * FROM character`, nil)
	if err != nil {
		return nil, err
	}

	records := listRecords(result)
	characters := make([]*model.Character, 0, len(records))
	for _, data := range records {
		characters = append(characters, characterFromData(data))
	}
	return characters, nil
}

// GetByID retrieves a character by ID
func (r *CharacterRepository) GetByID(ctx context.Context, id string) (*model.Character, error) {
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
	return characterFromData(data), nil
}

// Create creates a new character. The character's ID is filled in from
// the created record.
func (r *CharacterRepository) Create(ctx context.Context, character *model.Character) error {
	query := `
		CREATE character CONTENT {
			characterName: $characterName,
			userId: $userId,
			race: $race,
			class: $class,
			level: $level,
			attributes: $attributes,
			skills: $skills,
			equipment: $equipment,
			spells: $spells,
			games: $games
		}
	`

	vars := map[string]interface{}{
		"characterName": character.CharacterName,
		"userId":        character.UserID,
		"race":          character.Race,
		"class":         character.ClassID,
		"level":         character.Level,
		"attributes": map[string]interface{}{
			"strength":     character.Attributes.Strength,
			"dexterity":    character.Attributes.Dexterity,
			"constitution": character.Attributes.Constitution,
			"intelligence": character.Attributes.Intelligence,
			"wisdom":       character.Attributes.Wisdom,
			"charisma":     character.Attributes.Charisma,
		},
		"skills":    skillsToData(character.Skills),
		"equipment": emptyIfNil(character.Equipment),
		"spells":    emptyIfNil(character.Spells),
		"games":     emptyIfNil(character.Games),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: character name already exists", database.ErrDuplicate)
		}
		return err
	}

	records := listRecords(result)
	if len(records) == 0 {
		return errors.New("no result returned")
	}
	character.ID = convertRecordID(records[0]["id"])
	return nil
}

// UpdateFields applies a partial merge update and returns the updated
// record, or (nil, nil) if no such character exists. Nested attributes
// and skills objects merge field by field.
func (r *CharacterRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.Character, error) {
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
	return characterFromData(data), nil
}

// Delete removes a character and returns the deleted record, or
// (nil, nil) if no such character exists.
func (r *CharacterRepository) Delete(ctx context.Context, id string) (*model.Character, error) {
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
	return characterFromData(data), nil
}

func characterFromData(data map[string]interface{}) *model.Character {
	attributes := getMap(data, "attributes")
	skills := getMap(data, "skills")
	return &model.Character{
		ID:            convertRecordID(data["id"]),
		CharacterName: getString(data, "characterName"),
		UserID:        getString(data, "userId"),
		Race:          getString(data, "race"),
		ClassID:       getString(data, "class"),
		Level:         getInt(data, "level"),
		Attributes: model.Attributes{
			Strength:     getInt(attributes, "strength"),
			Dexterity:    getInt(attributes, "dexterity"),
			Constitution: getInt(attributes, "constitution"),
			Intelligence: getInt(attributes, "intelligence"),
			Wisdom:       getInt(attributes, "wisdom"),
			Charisma:     getInt(attributes, "charisma"),
		},
		Skills: model.Skills{
			Acrobatics:  getIntPtr(skills, "acrobatics"),
			Athletics:   getIntPtr(skills, "athletics"),
			Stealth:     getIntPtr(skills, "stealth"),
			Arcana:      getIntPtr(skills, "arcana"),
			History:     getIntPtr(skills, "history"),
			Insight:     getIntPtr(skills, "insight"),
			Perception:  getIntPtr(skills, "perception"),
			Performance: getIntPtr(skills, "performance"),
			Survival:    getIntPtr(skills, "survival"),
		},
		Equipment: getStringSlice(data, "equipment"),
		Spells:    getStringSlice(data, "spells"),
		Games:     getStringSlice(data, "games"),
	}
}

// skillsToData builds the stored skills object, keeping only the trained
// skills.
func skillsToData(skills model.Skills) map[string]interface{} {
	data := map[string]interface{}{}
	put := func(name string, v *int) {
		if v != nil {
			data[name] = *v
		}
	}
	put("acrobatics", skills.Acrobatics)
	put("athletics", skills.Athletics)
	put("stealth", skills.Stealth)
	put("arcana", skills.Arcana)
	put("history", skills.History)
	put("insight", skills.Insight)
	put("perception", skills.Perception)
	put("performance", skills.Performance)
	put("survival", skills.Survival)
	return data
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
