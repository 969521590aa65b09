package web

import (
	"net/http"
	"strings"

	"github.com/vbonduro/pantrychef/internal/domain"
	"github.com/vbonduro/pantrychef/internal/recipe"
	"github.com/vbonduro/pantrychef/internal/service"
)

func (s *Server) handleListLeftovers(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category"))))
	if category == "all" {
		category = ""
	}

	items, err := s.pantry.ListLeftovers(r.Context(), s.userID(r), category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"leftovers": nonNil(items)})
}

func (s *Server) handleAddLeftover(w http.ResponseWriter, r *http.Request) {
	var in service.NewLeftover
	if err := decodeJSON(w, r, &in, false); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	item, err := s.pantry.AddLeftover(r.Context(), s.userID(r), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleRemoveLeftover(w http.ResponseWriter, r *http.Request) {
	if err := s.pantry.RemoveLeftover(r.Context(), s.userID(r), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

func (s *Server) handleRemoveLeftovers(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	n, err := s.pantry.RemoveLeftovers(r.Context(), s.userID(r), req.IDs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int64{"removed": n})
}

func (s *Server) handleLeftoverStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.pantry.Stats(r.Context(), s.userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

type completeMealRequest struct {
	MealName  string                `json:"meal_name"`
	Leftovers []service.NewLeftover `json:"leftovers"`
}

func (s *Server) handleCompleteMeal(w http.ResponseWriter, r *http.Request) {
	var req completeMealRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	added, err := s.pantry.CompleteMeal(r.Context(), s.userID(r), req.MealName, req.Leftovers)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{"leftovers": nonNil(added)})
}

type generateRecipeRequest struct {
	LeftoverIDs []string           `json:"leftover_ids"`
	Preferences recipe.Preferences `json:"preferences"`
}

func (s *Server) handleGenerateRecipe(w http.ResponseWriter, r *http.Request) {
	var req generateRecipeRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	rec, err := s.pantry.GenerateRecipe(r.Context(), s.userID(r), req.LeftoverIDs, req.Preferences)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}
