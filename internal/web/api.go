package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jaminalder/codex-gomoku/internal/app"
	"github.com/jaminalder/codex-gomoku/internal/domain"
)

// gameResponse is the JSON body returned by every /api/games endpoint.
type gameResponse struct {
	ID     string          `json:"id"`
	Result string          `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	Game   domain.Snapshot `json:"game"`
}

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// apiStatus maps an error to the HTTP status of a JSON response.
func apiStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, app.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOccupied),
		errors.Is(err, domain.ErrGameOver),
		errors.Is(err, domain.ErrNothingToUndo):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// respond writes gs with the call's result. A nil gs means the game is unknown.
func respond(w http.ResponseWriter, gs *app.GameState, result string, err error) {
	if gs == nil {
		writeAPIError(w, http.StatusNotFound, app.ErrNotFound.Error())
		return
	}
	resp := gameResponse{ID: gs.ID, Result: result, Game: gs.Snapshot()}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, apiStatus(err), resp)
}

func (h *handlers) apiCreate(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.CreateGame()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Location", "/api/games/"+gs.ID)
	writeJSON(w, http.StatusCreated, gameResponse{ID: gs.ID, Game: gs.Snapshot()})
}

func (h *handlers) apiGet(w http.ResponseWriter, r *http.Request) {
	gs, _ := h.svc.Get(chi.URLParam(r, "id"))
	respond(w, gs, "", nil)
}

func (h *handlers) apiDelete(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Delete(chi.URLParam(r, "id")) {
		writeAPIError(w, http.StatusNotFound, app.ErrNotFound.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) apiPlay(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Row == nil || req.Col == nil {
		writeAPIError(w, http.StatusBadRequest, "body must be {\"row\": int, \"col\": int}")
		return
	}
	gs, res, err := h.svc.Play(chi.URLParam(r, "id"), *req.Row, *req.Col)
	respond(w, gs, res.Status.String(), err)
}

func (h *handlers) apiUndo(w http.ResponseWriter, r *http.Request) {
	gs, res, err := h.svc.Undo(chi.URLParam(r, "id"))
	respond(w, gs, res.Status.String(), err)
}

func (h *handlers) apiReset(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.Reset(chi.URLParam(r, "id"))
	respond(w, gs, "reset", err)
}
