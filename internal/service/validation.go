package service

// Stateless input validation, one family per entity. Each function returns a
// typed *Error with KindInvalidInput, or nil when the input is acceptable.
// The transport layer already guarantees shape at the type level; these
// checks cover the business rules a schema cannot express.

func validateUserCreate(input RegisterInput) *Error {
	if input.Username == "" {
		return invalidInput("username is required")
	}
	if !IsWellFormedEmail(input.Email) {
		return invalidInput("Invalid email format")
	}
	if len(input.Password) < minPasswordLength {
		return invalidInput("Password must be at least 6 characters long.")
	}
	return nil
}

func validateUserUpdate(input UserUpdateInput) *Error {
	if input.Username == nil && input.Email == nil && input.Password == nil && input.Gender == nil {
		return invalidInput("At least one field must be provided for update")
	}
	if input.Email != nil && !IsWellFormedEmail(*input.Email) {
		return invalidInput("Invalid email format")
	}
	if input.Password != nil && len(*input.Password) < minPasswordLength {
		return invalidInput("Password must be at least 6 characters long.")
	}
	return nil
}

func validateClassCreate(input ClassCreateInput) *Error {
	if input.Name == "" {
		return invalidInput("name is required")
	}
	if input.Description == "" {
		return invalidInput("description is required")
	}
	if input.HitDie == "" {
		return invalidInput("hitDie is required")
	}
	if input.PrimaryAbility == "" {
		return invalidInput("primaryAbility is required")
	}
	if input.SavingThrow == nil {
		return invalidInput("savingThrow is required")
	}
	if input.Proficiencies == nil {
		return invalidInput("proficiencies is required")
	}
	return nil
}

func validateClassUpdate(input ClassUpdateInput) *Error {
	if input.Name == nil && input.Description == nil && input.HitDie == nil &&
		input.PrimaryAbility == nil && input.SavingThrow == nil && input.Proficiencies == nil {
		return invalidInput("At least one field is required for updating a class")
	}
	return nil
}

func validateCharacterCreate(input CharacterCreateInput) *Error {
	if input.CharacterName == "" {
		return invalidInput("characterName is required")
	}
	if input.UserID == "" {
		return invalidInput("userId is required")
	}
	if input.Race == "" {
		return invalidInput("race is required")
	}
	if input.ClassID == "" {
		return invalidInput("class is required")
	}
	if input.Level == nil {
		return invalidInput("level is required")
	}
	if err := mustBeInteger("level", input.Level); err != nil {
		return err
	}
	if input.Attributes == nil {
		return invalidInput("attributes is required")
	}
	if err := validateAttributes(input.Attributes, true); err != nil {
		return err
	}
	if input.Skills == nil {
		return invalidInput("skills is required")
	}
	if err := validateSkills(input.Skills); err != nil {
		return err
	}
	if input.Equipment == nil {
		return invalidInput("equipment is required")
	}
	if input.Spells == nil {
		return invalidInput("spells is required")
	}
	if input.Games == nil {
		return invalidInput("games is required")
	}
	return nil
}

func validateCharacterUpdate(id string, input CharacterUpdateInput) *Error {
	if id == "" {
		return invalidInput("Character ID must be provided")
	}
	if !input.hasFields() {
		return invalidInput("At least one field must be provided for update")
	}
	if input.Level != nil {
		if err := mustBeInteger("level", input.Level); err != nil {
			return err
		}
	}
	if input.Attributes != nil {
		// Absent sub-fields stay untouched; present ones must be integers.
		if err := validateAttributes(input.Attributes, false); err != nil {
			return err
		}
	}
	if input.Skills != nil {
		if err := validateSkills(input.Skills); err != nil {
			return err
		}
	}
	return nil
}

func validateGameCreate(input GameCreateInput) *Error {
	if input.GameName == "" {
		return invalidInput("gameName is required")
	}
	if input.DungeonMaster == "" {
		return invalidInput("dungeonMaster is required")
	}
	return nil
}

func validateGameUpdate(input GameUpdateInput) *Error {
	if input.GameName == nil && input.DungeonMaster == nil && input.Description == nil &&
		input.Players == nil && input.Characters == nil {
		return invalidInput("At least one field must be provided for update")
	}
	return nil
}

func validateAttributes(attrs *AttributesInput, requireAll bool) *Error {
	for _, f := range attrs.fields() {
		if f.value == nil {
			if requireAll {
				return invalidInput(f.name + " is required")
			}
			continue
		}
		if err := mustBeInteger(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func validateSkills(skills *SkillsInput) *Error {
	for _, f := range skills.fields() {
		if f.value == nil {
			continue
		}
		if err := mustBeInteger(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// mustBeInteger rejects fractional numeric input. JSON numbers arrive as
// float64, so 18 passes and 18.5 does not.
func mustBeInteger(name string, value *float64) *Error {
	if value == nil {
		return nil
	}
	if *value != float64(int(*value)) {
		return invalidInput(name + " must be an integer")
	}
	return nil
}
