package handler

import (
	"net/http"

	"github.com/questforge/grimoire/api/internal/model"
	"github.com/questforge/grimoire/api/internal/service"
)

// CharacterHandler handles character sheet HTTP requests
type CharacterHandler struct {
	svc *service.CharacterService
}

// NewCharacterHandler creates a new character handler
func NewCharacterHandler(svc *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{svc: svc}
}

// Numeric fields decode as *float64 so the service can reject fractional
// values instead of silently truncating them.

// AttributesRequest mirrors the attributes object in character bodies
type AttributesRequest struct {
	Strength     *float64 `json:"strength,omitempty"`
	Dexterity    *float64 `json:"dexterity,omitempty"`
	Constitution *float64 `json:"constitution,omitempty"`
	Intelligence *float64 `json:"intelligence,omitempty"`
	Wisdom       *float64 `json:"wisdom,omitempty"`
	Charisma     *float64 `json:"charisma,omitempty"`
}

// SkillsRequest mirrors the skills object in character bodies
type SkillsRequest struct {
	Acrobatics  *float64 `json:"acrobatics,omitempty"`
	Athletics   *float64 `json:"athletics,omitempty"`
	Stealth     *float64 `json:"stealth,omitempty"`
	Arcana      *float64 `json:"arcana,omitempty"`
	History     *float64 `json:"history,omitempty"`
	Insight     *float64 `json:"insight,omitempty"`
	Perception  *float64 `json:"perception,omitempty"`
	Performance *float64 `json:"performance,omitempty"`
	Survival    *float64 `json:"survival,omitempty"`
}

// CharacterCreateRequest represents a character creation body
type CharacterCreateRequest struct {
	CharacterName string             `json:"characterName"`
	UserID        string             `json:"userId"`
	Race          string             `json:"race"`
	Class         string             `json:"class"`
	Level         *float64           `json:"level"`
	Attributes    *AttributesRequest `json:"attributes"`
	Skills        *SkillsRequest     `json:"skills"`
	Equipment     []string           `json:"equipment"`
	Spells        []string           `json:"spells"`
	Games         []string           `json:"games"`
}

// CharacterUpdateRequest represents a partial character update body
type CharacterUpdateRequest struct {
	CharacterName *string            `json:"characterName,omitempty"`
	UserID        *string            `json:"userId,omitempty"`
	Race          *string            `json:"race,omitempty"`
	Class         *string            `json:"class,omitempty"`
	Level         *float64           `json:"level,omitempty"`
	Attributes    *AttributesRequest `json:"attributes,omitempty"`
	Skills        *SkillsRequest     `json:"skills,omitempty"`
	Equipment     []string           `json:"equipment,omitempty"`
	Spells        []string           `json:"spells,omitempty"`
	Games         []string           `json:"games,omitempty"`
}

func attributesInput(req *AttributesRequest) *service.AttributesInput {
	if req == nil {
		return nil
	}
	return &service.AttributesInput{
		Strength:     req.Strength,
		Dexterity:    req.Dexterity,
		Constitution: req.Constitution,
		Intelligence: req.Intelligence,
		Wisdom:       req.Wisdom,
		Charisma:     req.Charisma,
	}
}

func skillsInput(req *SkillsRequest) *service.SkillsInput {
	if req == nil {
		return nil
	}
	return &service.SkillsInput{
		Acrobatics:  req.Acrobatics,
		Athletics:   req.Athletics,
		Stealth:     req.Stealth,
		Arcana:      req.Arcana,
		History:     req.History,
		Insight:     req.Insight,
		Perception:  req.Perception,
		Performance: req.Performance,
		Survival:    req.Survival,
	}
}

// List handles GET /v1/characters
func (h *CharacterHandler) List(w http.ResponseWriter, r *http.Request) {
	characters, err := h.svc.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, characters, nil)
}

// Get handles GET /v1/characters/{characterId}
func (h *CharacterHandler) Get(w http.ResponseWriter, r *http.Request) {
	characterID := r.PathValue("characterId")
	if characterID == "" {
		WriteError(w, model.NewBadRequestError("character ID required"))
		return
	}

	character, err := h.svc.GetByID(r.Context(), characterID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, character, nil)
}

// Create handles POST /v1/characters
func (h *CharacterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CharacterCreateRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	character, err := h.svc.Create(r.Context(), service.CharacterCreateInput{
		CharacterName: req.CharacterName,
		UserID:        req.UserID,
		Race:          req.Race,
		ClassID:       req.Class,
		Level:         req.Level,
		Attributes:    attributesInput(req.Attributes),
		Skills:        skillsInput(req.Skills),
		Equipment:     req.Equipment,
		Spells:        req.Spells,
		Games:         req.Games,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, character, nil)
}

// Update handles PATCH /v1/characters/{characterId}
func (h *CharacterHandler) Update(w http.ResponseWriter, r *http.Request) {
	characterID := r.PathValue("characterId")

	var req CharacterUpdateRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	character, err := h.svc.Update(r.Context(), characterID, service.CharacterUpdateInput{
		CharacterName: req.CharacterName,
		UserID:        req.UserID,
		Race:          req.Race,
		ClassID:       req.Class,
		Level:         req.Level,
		Attributes:    attributesInput(req.Attributes),
		Skills:        skillsInput(req.Skills),
		Equipment:     req.Equipment,
		Spells:        req.Spells,
		Games:         req.Games,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, character, nil)
}

// Delete handles DELETE /v1/characters/{characterId}
func (h *CharacterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	characterID := r.PathValue("characterId")
	if characterID == "" {
		WriteError(w, model.NewBadRequestError("character ID required"))
		return
	}

	character, err := h.svc.Delete(r.Context(), characterID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, character, nil)
}
