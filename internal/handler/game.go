package handler

import (
	"net/http"

	"github.com/questforge/grimoire/api/internal/model"
	"github.com/questforge/grimoire/api/internal/service"
)

// GameHandler handles game HTTP requests
type GameHandler struct {
	svc *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(svc *service.GameService) *GameHandler {
	return &GameHandler{svc: svc}
}

// GameCreateRequest represents a game creation body
type GameCreateRequest struct {
	GameName      string   `json:"gameName"`
	DungeonMaster string   `json:"dungeonMaster"`
	Description   *string  `json:"description,omitempty"`
	Players       []string `json:"players,omitempty"`
	Characters    []string `json:"characters,omitempty"`
}

// GameUpdateRequest represents a partial game update body
type GameUpdateRequest struct {
	GameName      *string  `json:"gameName,omitempty"`
	DungeonMaster *string  `json:"dungeonMaster,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Players       []string `json:"players,omitempty"`
	Characters    []string `json:"characters,omitempty"`
}

// List handles GET /v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.svc.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, games, nil)
}

// Get handles GET /v1/games/{gameId}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameId")
	if gameID == "" {
		WriteError(w, model.NewBadRequestError("game ID required"))
		return
	}

	game, err := h.svc.GetByID(r.Context(), gameID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, game, nil)
}

// Create handles POST /v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req GameCreateRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	game, err := h.svc.Create(r.Context(), service.GameCreateInput{
		GameName:      req.GameName,
		DungeonMaster: req.DungeonMaster,
		Description:   req.Description,
		Players:       req.Players,
		Characters:    req.Characters,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, game, nil)
}

// Update handles PATCH /v1/games/{gameId}
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameId")
	if gameID == "" {
		WriteError(w, model.NewBadRequestError("game ID required"))
		return
	}

	var req GameUpdateRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	game, err := h.svc.Update(r.Context(), gameID, service.GameUpdateInput{
		GameName:      req.GameName,
		DungeonMaster: req.DungeonMaster,
		Description:   req.Description,
		Players:       req.Players,
		Characters:    req.Characters,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, game, nil)
}

// Delete handles DELETE /v1/games/{gameId}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameId")
	if gameID == "" {
		WriteError(w, model.NewBadRequestError("game ID required"))
		return
	}

	game, err := h.svc.Delete(r.Context(), gameID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, game, nil)
}
