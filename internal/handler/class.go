package handler

import (
	"net/http"

	"github.com/questforge/grimoire/api/internal/model"
	"github.com/questforge/grimoire/api/internal/service"
)

// ClassHandler handles character class HTTP requests
type ClassHandler struct {
	svc *service.ClassService
}

// NewClassHandler creates a new class handler
func NewClassHandler(svc *service.ClassService) *ClassHandler {
	return &ClassHandler{svc: svc}
}

// ProficienciesRequest mirrors the proficiencies object in class bodies
type ProficienciesRequest struct {
	Armor   []string `json:"armor"`
	Weapons []string `json:"weapons"`
}

// ClassCreateRequest represents a class creation body
type ClassCreateRequest struct {
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	HitDie         string                `json:"hitDie"`
	PrimaryAbility string                `json:"primaryAbility"`
	SavingThrow    []string              `json:"savingThrow"`
	Proficiencies  *ProficienciesRequest `json:"proficiencies"`
}

// ClassUpdateRequest represents a partial class update body
type ClassUpdateRequest struct {
	Name           *string               `json:"name,omitempty"`
	Description    *string               `json:"description,omitempty"`
	HitDie         *string               `json:"hitDie,omitempty"`
	PrimaryAbility *string               `json:"primaryAbility,omitempty"`
	SavingThrow    []string              `json:"savingThrow,omitempty"`
	Proficiencies  *ProficienciesRequest `json:"proficiencies,omitempty"`
}

func proficienciesInput(req *ProficienciesRequest) *service.ProficienciesInput {
	if req == nil {
		return nil
	}
	return &service.ProficienciesInput{
		Armor:   req.Armor,
		Weapons: req.Weapons,
	}
}

// List handles GET /v1/classes
func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	classes, err := h.svc.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, classes, nil)
}

// Get handles GET /v1/classes/{classId}
func (h *ClassHandler) Get(w http.ResponseWriter, r *http.Request) {
	classID := r.PathValue("classId")
	if classID == "" {
		WriteError(w, model.NewBadRequestError("class ID required"))
		return
	}

	class, err := h.svc.GetByID(r.Context(), classID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, class, nil)
}

// Create handles POST /v1/classes
func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ClassCreateRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	class, err := h.svc.Create(r.Context(), service.ClassCreateInput{
		Name:           req.Name,
		Description:    req.Description,
		HitDie:         req.HitDie,
		PrimaryAbility: req.PrimaryAbility,
		SavingThrow:    req.SavingThrow,
		Proficiencies:  proficienciesInput(req.Proficiencies),
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, class, nil)
}

// Update handles PATCH /v1/classes/{classId}
func (h *ClassHandler) Update(w http.ResponseWriter, r *http.Request) {
	classID := r.PathValue("classId")
	if classID == "" {
		WriteError(w, model.NewBadRequestError("class ID required"))
		return
	}

	var req ClassUpdateRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	class, err := h.svc.Update(r.Context(), classID, service.ClassUpdateInput{
		Name:           req.Name,
		Description:    req.Description,
		HitDie:         req.HitDie,
		PrimaryAbility: req.PrimaryAbility,
		SavingThrow:    req.SavingThrow,
		Proficiencies:  proficienciesInput(req.Proficiencies),
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, class, nil)
}

// Delete handles DELETE /v1/classes/{classId}
func (h *ClassHandler) Delete(w http.ResponseWriter, r *http.Request) {
	classID := r.PathValue("classId")
	if classID == "" {
		WriteError(w, model.NewBadRequestError("class ID required"))
		return
	}

	class, err := h.svc.Delete(r.Context(), classID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, class, nil)
}
