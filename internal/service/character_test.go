package service

import (
	"context"
	"errors"
	"testing"

	"github.com/questforge/grimoire/api/internal/model"
)

type characterFixture struct {
	svc       *CharacterService
	repo      *mockCharacterRepo
	userRepo  *mockUserRepo
	classRepo *mockClassRepo
	owner     *model.User
	class     *model.Class
}

func setupCharacterService(t *testing.T) *characterFixture {
	t.Helper()

	userRepo := newMockUserRepo()
	classRepo := newMockClassRepo()
	repo := newMockCharacterRepo()

	owner := &model.User{Username: "critrole", Email: "critrole@example.com", Characters: []string{}}
	if err := userRepo.Create(context.Background(), owner); err != nil {
		t.Fatalf("failed to seed owner: %v", err)
	}
	class := &model.Class{Name: "Barbarian", HitDie: "d12"}
	if err := classRepo.Create(context.Background(), class); err != nil {
		t.Fatalf("failed to seed class: %v", err)
	}

	svc := NewCharacterService(CharacterServiceConfig{
		CharacterRepo: repo,
		UserRepo:      userRepo,
		ClassRepo:     classRepo,
		Relationships: NewRelationshipMaintainer(userRepo),
	})

	return &characterFixture{
		svc:       svc,
		repo:      repo,
		userRepo:  userRepo,
		classRepo: classRepo,
		owner:     owner,
		class:     class,
	}
}

func f64(v float64) *float64 { return &v }

func (f *characterFixture) validInput() CharacterCreateInput {
	return CharacterCreateInput{
		CharacterName: "Grog Strongjaw",
		UserID:        f.owner.ID,
		Race:          "Goliath",
		ClassID:       f.class.ID,
		Level:         f64(5),
		Attributes: &AttributesInput{
			Strength:     f64(18),
			Dexterity:    f64(13),
			Constitution: f64(16),
			Intelligence: f64(6),
			Wisdom:       f64(10),
			Charisma:     f64(12),
		},
		Skills: &SkillsInput{
			Athletics: f64(7),
		},
		Equipment: []string{"greataxe"},
		Spells:    []string{},
		Games:     []string{},
	}
}

func TestCharacterCreate(t *testing.T) {
	t.Run("persists the sheet and attaches it to the owner", func(t *testing.T) {
		f := setupCharacterService(t)

		character, err := f.svc.Create(context.Background(), f.validInput())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if character.ID == "" {
			t.Error("expected the created character to have an id")
		}
		if character.Level != 5 {
			t.Errorf("expected level 5, got %d", character.Level)
		}
		if character.Attributes.Strength != 18 {
			t.Errorf("expected strength 18, got %d", character.Attributes.Strength)
		}
		if character.Skills.Athletics == nil || *character.Skills.Athletics != 7 {
			t.Error("expected athletics skill to survive")
		}
		if character.Skills.Stealth != nil {
			t.Error("unsupplied skills should stay nil")
		}

		if len(f.userRepo.attached) != 1 {
			t.Fatalf("expected exactly one attach call, got %d", len(f.userRepo.attached))
		}
		if got := f.userRepo.attached[0]; got[0] != f.owner.ID || got[1] != character.ID {
			t.Errorf("attach call had wrong ids: %v", got)
		}
		if len(f.userRepo.users[f.owner.ID].Characters) != 1 {
			t.Error("expected the character id on the owner's list")
		}
	})

	t.Run("rejects fractional strength without persisting or attaching", func(t *testing.T) {
		f := setupCharacterService(t)

		input := f.validInput()
		input.Attributes.Strength = f64(18.5)

		_, err := f.svc.Create(context.Background(), input)
		assertKind(t, err, KindInvalidInput, "strength must be an integer")

		if f.repo.created != 0 {
			t.Error("rejected create must not reach the repository")
		}
		if len(f.userRepo.attached) != 0 {
			t.Error("rejected create must not attach anything")
		}
	})

	t.Run("rejects fractional level", func(t *testing.T) {
		f := setupCharacterService(t)

		input := f.validInput()
		input.Level = f64(2.5)

		_, err := f.svc.Create(context.Background(), input)
		assertKind(t, err, KindInvalidInput, "level must be an integer")
	})

	t.Run("rejects missing fields with per-field messages", func(t *testing.T) {
		f := setupCharacterService(t)

		tests := []struct {
			name    string
			mutate  func(*CharacterCreateInput)
			message string
		}{
			{"characterName", func(in *CharacterCreateInput) { in.CharacterName = "" }, "characterName is required"},
			{"userId", func(in *CharacterCreateInput) { in.UserID = "" }, "userId is required"},
			{"race", func(in *CharacterCreateInput) { in.Race = "" }, "race is required"},
			{"class", func(in *CharacterCreateInput) { in.ClassID = "" }, "class is required"},
			{"level", func(in *CharacterCreateInput) { in.Level = nil }, "level is required"},
			{"attributes", func(in *CharacterCreateInput) { in.Attributes = nil }, "attributes is required"},
			{"wisdom", func(in *CharacterCreateInput) { in.Attributes.Wisdom = nil }, "wisdom is required"},
			{"skills", func(in *CharacterCreateInput) { in.Skills = nil }, "skills is required"},
			{"equipment", func(in *CharacterCreateInput) { in.Equipment = nil }, "equipment is required"},
			{"spells", func(in *CharacterCreateInput) { in.Spells = nil }, "spells is required"},
			{"games", func(in *CharacterCreateInput) { in.Games = nil }, "games is required"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				input := f.validInput()
				tt.mutate(&input)

				_, err := f.svc.Create(context.Background(), input)
				assertKind(t, err, KindInvalidInput, tt.message)
			})
		}
	})

	t.Run("requires the owning user to exist", func(t *testing.T) {
		f := setupCharacterService(t)

		input := f.validInput()
		input.UserID = "user:missing"

		_, err := f.svc.Create(context.Background(), input)
		assertKind(t, err, KindNotFound, "User not found.")
		if f.repo.created != 0 {
			t.Error("create must not proceed with a missing owner")
		}
	})

	t.Run("requires the class to exist", func(t *testing.T) {
		f := setupCharacterService(t)

		input := f.validInput()
		input.ClassID = "class:missing"

		_, err := f.svc.Create(context.Background(), input)
		assertKind(t, err, KindNotFound, "Class not found.")
	})

	t.Run("attach failure does not fail the create", func(t *testing.T) {
		f := setupCharacterService(t)
		f.userRepo.attachErr = errors.New("transient write failure")

		character, err := f.svc.Create(context.Background(), f.validInput())
		if err != nil {
			t.Fatalf("Create should succeed despite attach failure: %v", err)
		}
		if f.repo.characters[character.ID] == nil {
			t.Error("expected the character to be persisted")
		}
	})

	t.Run("wraps repository failure", func(t *testing.T) {
		f := setupCharacterService(t)
		f.repo.createErr = errors.New("connection reset")

		_, err := f.svc.Create(context.Background(), f.validInput())
		assertKind(t, err, KindDependency, "Failed to create character: connection reset")
	})
}

func TestCharacterUpdate(t *testing.T) {
	create := func(t *testing.T, f *characterFixture) *model.Character {
		t.Helper()
		character, err := f.svc.Create(context.Background(), f.validInput())
		if err != nil {
			t.Fatalf("failed to seed character: %v", err)
		}
		return character
	}

	t.Run("merges supplied fields only", func(t *testing.T) {
		f := setupCharacterService(t)
		character := create(t, f)

		name := "Grog the Mighty"
		updated, err := f.svc.Update(context.Background(), character.ID, CharacterUpdateInput{CharacterName: &name})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.CharacterName != "Grog the Mighty" {
			t.Errorf("expected updated name, got %q", updated.CharacterName)
		}
		if updated.Level != 5 {
			t.Errorf("level should be untouched, got %d", updated.Level)
		}
		if len(f.repo.lastFields) != 1 {
			t.Errorf("expected exactly one merged field, got %v", f.repo.lastFields)
		}
	})

	t.Run("partial attribute update sends only supplied sub-fields", func(t *testing.T) {
		f := setupCharacterService(t)
		character := create(t, f)

		_, err := f.svc.Update(context.Background(), character.ID, CharacterUpdateInput{
			Attributes: &AttributesInput{Strength: f64(20)},
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		attrs, ok := f.repo.lastFields["attributes"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected an attributes sub-object, got %v", f.repo.lastFields)
		}
		if len(attrs) != 1 {
			t.Errorf("expected only strength in the merge, got %v", attrs)
		}
		if attrs["strength"] != 20 {
			t.Errorf("expected strength 20, got %v", attrs["strength"])
		}

		stored := f.repo.characters[character.ID]
		if stored.Attributes.Strength != 20 {
			t.Errorf("expected merged strength 20, got %d", stored.Attributes.Strength)
		}
		if stored.Attributes.Dexterity != 13 {
			t.Errorf("dexterity should be untouched, got %d", stored.Attributes.Dexterity)
		}
	})

	t.Run("rejects fractional attribute on update", func(t *testing.T) {
		f := setupCharacterService(t)
		character := create(t, f)

		_, err := f.svc.Update(context.Background(), character.ID, CharacterUpdateInput{
			Attributes: &AttributesInput{Dexterity: f64(14.25)},
		})
		assertKind(t, err, KindInvalidInput, "dexterity must be an integer")
	})

	t.Run("rejects empty id", func(t *testing.T) {
		f := setupCharacterService(t)

		name := "nobody"
		_, err := f.svc.Update(context.Background(), "", CharacterUpdateInput{CharacterName: &name})
		assertKind(t, err, KindInvalidInput, "Character ID must be provided")
	})

	t.Run("rejects empty update", func(t *testing.T) {
		f := setupCharacterService(t)
		character := create(t, f)

		_, err := f.svc.Update(context.Background(), character.ID, CharacterUpdateInput{})
		assertKind(t, err, KindInvalidInput, "At least one field must be provided for update")
	})

	t.Run("not found for unknown id", func(t *testing.T) {
		f := setupCharacterService(t)

		name := "ghost"
		_, err := f.svc.Update(context.Background(), "character:missing", CharacterUpdateInput{CharacterName: &name})
		assertKind(t, err, KindNotFound, "Character not found.")
	})
}

func TestCharacterDelete(t *testing.T) {
	t.Run("returns the deleted record and leaves the owner list alone", func(t *testing.T) {
		f := setupCharacterService(t)
		character, err := f.svc.Create(context.Background(), f.validInput())
		if err != nil {
			t.Fatalf("failed to seed character: %v", err)
		}

		deleted, err := f.svc.Delete(context.Background(), character.ID)
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if deleted.ID != character.ID {
			t.Errorf("expected deleted character %s, got %s", character.ID, deleted.ID)
		}
		if _, exists := f.repo.characters[character.ID]; exists {
			t.Error("character still present after delete")
		}
		if len(f.userRepo.users[f.owner.ID].Characters) != 1 {
			t.Error("delete must not detach the id from the owner's list")
		}
	})

	t.Run("not found for unknown id", func(t *testing.T) {
		f := setupCharacterService(t)

		_, err := f.svc.Delete(context.Background(), "character:missing")
		assertKind(t, err, KindNotFound, "Character not found.")
	})
}

func TestCharacterGetAndList(t *testing.T) {
	f := setupCharacterService(t)
	character, err := f.svc.Create(context.Background(), f.validInput())
	if err != nil {
		t.Fatalf("failed to seed character: %v", err)
	}

	got, err := f.svc.GetByID(context.Background(), character.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CharacterName != "Grog Strongjaw" {
		t.Errorf("unexpected character name %q", got.CharacterName)
	}

	_, err = f.svc.GetByID(context.Background(), "character:missing")
	assertKind(t, err, KindNotFound, "Character not found.")

	characters, err := f.svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(characters) != 1 {
		t.Errorf("expected 1 character, got %d", len(characters))
	}
}
