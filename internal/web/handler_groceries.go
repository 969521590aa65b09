package web

import (
	"io"
	"net/http"

	"github.com/vbonduro/pantrychef/internal/recipe"
	"github.com/vbonduro/pantrychef/internal/service"
)

func (s *Server) handleListGroceries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := s.groceries.ListGroceries(r.Context(), s.userID(r), q.Get("q"), q.Get("category"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"items": nonNil(items)})
}

// addGroceriesRequest accepts either a single item or {"items": [...]}.
type addGroceriesRequest struct {
	service.NewGrocery
	Items []service.NewGrocery `json:"items"`
}

func (s *Server) handleAddGroceries(w http.ResponseWriter, r *http.Request) {
	var req addGroceriesRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	if len(req.Items) > 0 {
		items, err := s.groceries.AddGroceries(r.Context(), s.userID(r), req.Items)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, map[string]any{"items": items})
		return
	}

	item, err := s.groceries.AddGrocery(r.Context(), s.userID(r), req.NewGrocery)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

// handleImportGroceries takes a plain-text list, one item per line.
func (s *Server) handleImportGroceries(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.badRequest(w, "failed to read list")
		return
	}

	items, err := s.groceries.ImportList(r.Context(), s.userID(r), string(body))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{"items": items})
}

func (s *Server) handleUpdateGrocery(w http.ResponseWriter, r *http.Request) {
	var upd service.GroceryUpdate
	if err := decodeJSON(w, r, &upd, false); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	item, err := s.groceries.UpdateGrocery(r.Context(), s.userID(r), r.PathValue("id"), upd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

type toggleRequest struct {
	Completed *bool `json:"completed"`
}

func (s *Server) handleToggleGrocery(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	item, err := s.groceries.ToggleGrocery(r.Context(), s.userID(r), r.PathValue("id"), req.Completed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleRemoveGrocery(w http.ResponseWriter, r *http.Request) {
	if err := s.groceries.RemoveGrocery(r.Context(), s.userID(r), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearCompleted(w http.ResponseWriter, r *http.Request) {
	n, err := s.groceries.ClearCompleted(r.Context(), s.userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int64{"removed": n})
}

type fromRecipeRequest struct {
	RecipeName  string              `json:"recipe_name"`
	Ingredients []recipe.Ingredient `json:"ingredients"`
}

func (s *Server) handleAddFromRecipe(w http.ResponseWriter, r *http.Request) {
	var req fromRecipeRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	items, err := s.groceries.AddFromRecipe(r.Context(), s.userID(r), req.RecipeName, req.Ingredients)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{"items": nonNil(items)})
}

func (s *Server) handleComparePrices(w http.ResponseWriter, r *http.Request) {
	c, err := s.groceries.ComparePrices(r.Context(), s.userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.groceries.Suggestions(r.Context(), s.userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"suggestions": nonNil(suggestions)})
}
