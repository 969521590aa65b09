package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vbonduro/pantrychef/internal/db"
	"github.com/vbonduro/pantrychef/internal/logging"
	"github.com/vbonduro/pantrychef/internal/pricing"
	"github.com/vbonduro/pantrychef/internal/recipe"
	"github.com/vbonduro/pantrychef/internal/service"
	"github.com/vbonduro/pantrychef/internal/store"
	"github.com/vbonduro/pantrychef/internal/web"
)

// newTestServer sets up a real web.Server backed by in-memory SQLite and the
// embedded price catalog. Returns the test server and a cleanup function.
func newTestServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()
	database, err := db.OpenForTesting()
	if err != nil {
		t.Fatalf("OpenForTesting: %v", err)
	}
	catalog, err := pricing.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}

	logger := logging.Discard()
	pantry := service.NewPantryService(
		store.NewLeftoverStore(database),
		recipe.NewSynthesizer(recipe.NewSource(1)),
		service.PantryOptions{},
		logger,
	)
	groceries := service.NewGroceryService(store.NewGroceryStore(database), catalog, logger)

	srv := httptest.NewServer(web.NewServer(pantry, groceries, web.Options{
		DefaultUserID:  "local",
		MetricsEnabled: true,
	}, logger))
	return srv, func() {
		srv.Close()
		_ = database.Close()
	}
}

// do sends a JSON request as user and decodes a JSON response into out when
// out is non-nil. It fails the test if the status differs from want.
func do(t *testing.T, srv *httptest.Server, method, path, user string, body any, want int, out any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	if err != nil {
		t.Fatalf("new %s request: %v", method, err)
	}
	if user != "" {
		req.Header.Set(web.UserHeader, user)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })

	if resp.StatusCode != want {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: expected %d, got %d: %s", method, path, want, resp.StatusCode, b)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
}

type leftoverJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	FromMeal string `json:"from_meal"`
	Status   string `json:"status"`
}

type groceryJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	Category   string `json:"category"`
	FromRecipe string `json:"from_recipe"`
	Completed  bool   `json:"completed"`
}

// TestIntegration_LeftoversToRecipe adds leftovers, generates a recipe from
// them, then puts the recipe's extra ingredients on the grocery list.
func TestIntegration_LeftoversToRecipe(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv, cleanup := newTestServer(t)
	defer cleanup()

	var chicken, peppers leftoverJSON
	do(t, srv, http.MethodPost, "/leftovers", "",
		map[string]any{"name": "Chicken", "category": "proteins"}, http.StatusCreated, &chicken)
	do(t, srv, http.MethodPost, "/leftovers", "",
		map[string]any{"name": "Peppers", "category": "vegetables"}, http.StatusCreated, &peppers)

	var list struct {
		Leftovers []leftoverJSON `json:"leftovers"`
	}
	do(t, srv, http.MethodGet, "/leftovers", "", nil, http.StatusOK, &list)
	if len(list.Leftovers) != 2 {
		t.Fatalf("expected 2 leftovers, got %d", len(list.Leftovers))
	}

	var rec recipe.Recipe
	do(t, srv, http.MethodPost, "/recipes/generate", "", map[string]any{
		"leftover_ids": []string{chicken.ID, peppers.ID},
		"preferences":  map[string]string{"time_preference": "short", "health_focus": "healthy"},
	}, http.StatusOK, &rec)

	if rec.CookingMethod != recipe.MethodQuickSaute {
		t.Errorf("cooking method = %q, want %q", rec.CookingMethod, recipe.MethodQuickSaute)
	}
	if got := strings.Join(rec.UsesLeftovers, ","); got != "Chicken,Peppers" {
		t.Errorf("uses leftovers = %q", got)
	}
	if rec.Nutrition.Calories > recipe.MaxHealthyCalories {
		t.Errorf("healthy recipe has %d calories", rec.Nutrition.Calories)
	}

	var added struct {
		Items []groceryJSON `json:"items"`
	}
	do(t, srv, http.MethodPost, "/groceries/from-recipe", "", map[string]any{
		"recipe_name": rec.Name,
		"ingredients": rec.Ingredients,
	}, http.StatusCreated, &added)
	if len(added.Items) != len(rec.Supplements()) {
		t.Errorf("added %d grocery items, want %d", len(added.Items), len(rec.Supplements()))
	}
	for _, item := range added.Items {
		if item.FromRecipe != rec.Name {
			t.Errorf("item %q from_recipe = %q", item.Name, item.FromRecipe)
		}
	}
}

func TestIntegration_GenerateRecipeErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv, cleanup := newTestServer(t)
	defer cleanup()

	do(t, srv, http.MethodPost, "/recipes/generate", "",
		map[string]any{"leftover_ids": []string{}}, http.StatusBadRequest, nil)
	do(t, srv, http.MethodPost, "/recipes/generate", "",
		map[string]any{"leftover_ids": []string{"missing"}}, http.StatusNotFound, nil)

	var rice leftoverJSON
	do(t, srv, http.MethodPost, "/leftovers", "",
		map[string]any{"name": "Leftover Rice", "category": "grains"}, http.StatusCreated, &rice)
	do(t, srv, http.MethodPost, "/recipes/generate", "", map[string]any{
		"leftover_ids": []string{rice.ID},
		"preferences":  map[string]string{"difficulty": "impossible"},
	}, http.StatusBadRequest, nil)
}

func TestIntegration_LeftoverValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv, cleanup := newTestServer(t)
	defer cleanup()

	do(t, srv, http.MethodPost, "/leftovers", "", map[string]any{"name": ""}, http.StatusBadRequest, nil)
	do(t, srv, http.MethodPost, "/leftovers", "",
		map[string]any{"name": strings.Repeat("a", 201)}, http.StatusBadRequest, nil)
	do(t, srv, http.MethodPost, "/leftovers", "",
		map[string]any{"name": "Cake", "category": "desserts"}, http.StatusBadRequest, nil)
	do(t, srv, http.MethodGet, "/leftovers?category=desserts", "", nil, http.StatusBadRequest, nil)

	resp, err := http.Post(srv.URL+"/leftovers", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST /leftovers: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed JSON: expected 400, got %d", resp.StatusCode)
	}
}

func TestIntegration_LeftoverLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv, cleanup := newTestServer(t)
	defer cleanup()

	var meal struct {
		Leftovers []leftoverJSON `json:"leftovers"`
	}
	do(t, srv, http.MethodPost, "/meals/complete", "", map[string]any{
		"meal_name": "Curry Night",
		"leftovers": []map[string]any{
			{"name": "Curry", "category": "proteins"},
			{"name": "Naan", "category": "grains", "expiry_days": 1},
			{"name": "Raita", "category": "dairy"},
		},
	}, http.StatusCreated, &meal)
	if len(meal.Leftovers) != 3 || meal.Leftovers[0].FromMeal != "Curry Night" {
		t.Fatalf("unexpected meal leftovers: %+v", meal.Leftovers)
	}

	var stats service.PantryStats
	do(t, srv, http.MethodGet, "/leftovers/stats", "", nil, http.StatusOK, &stats)
	if stats.Total != 3 || stats.Expiring != 1 || stats.Fresh != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	do(t, srv, http.MethodDelete, "/leftovers/"+meal.Leftovers[0].ID, "", nil, http.StatusNoContent, nil)
	do(t, srv, http.MethodDelete, "/leftovers/"+meal.Leftovers[0].ID, "", nil, http.StatusNotFound, nil)

	var removed struct {
		Removed int64 `json:"removed"`
	}
	do(t, srv, http.MethodPost, "/leftovers/bulk-delete", "", map[string]any{
		"ids": []string{meal.Leftovers[1].ID, meal.Leftovers[2].ID},
	}, http.StatusOK, &removed)
	if removed.Removed != 2 {
		t.Errorf("removed = %d, want 2", removed.Removed)
	}
	do(t, srv, http.MethodPost, "/leftovers/bulk-delete", "",
		map[string]any{"ids": []string{}}, http.StatusBadRequest, nil)
}

func TestIntegration_UsersAreIsolated(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv, cleanup := newTestServer(t)
	defer cleanup()

	var item groceryJSON
	do(t, srv, http.MethodPost, "/groceries", "alice", map[string]any{"name": "Milk"}, http.StatusCreated, &item)

	var list struct {
		Items []groceryJSON `json:"items"`
	}
	do(t, srv, http.MethodGet, "/groceries", "bob", nil, http.StatusOK, &list)
	if len(list.Items) != 0 {
		t.Errorf("bob sees %d of alice's items", len(list.Items))
	}
	do(t, srv, http.MethodDelete, "/groceries/"+item.ID, "bob", nil, http.StatusNotFound, nil)
	do(t, srv, http.MethodGet, "/groceries", "alice", nil, http.StatusOK, &list)
	if len(list.Items) != 1 {
		t.Errorf("alice has %d items, want 1", len(list.Items))
	}
}

func TestIntegration_GroceryListAndPrices(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv, cleanup := newTestServer(t)
	defer cleanup()

	var bulk struct {
		Items []groceryJSON `json:"items"`
	}
	do(t, srv, http.MethodPost, "/groceries", "", map[string]any{
		"items": []map[string]string{
			{"name": "Chicken Breast", "category": "Protein", "amount": "500g"},
			{"name": "Broccoli", "category": "Vegetables"},
			{"name": "Salmon", "category": "Protein"},
		},
	}, http.StatusCreated, &bulk)
	if len(bulk.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(bulk.Items))
	}
	salmon := bulk.Items[2]

	var toggled groceryJSON
	do(t, srv, http.MethodPost, "/groceries/"+salmon.ID+"/toggle", "", nil, http.StatusOK, &toggled)
	if !toggled.Completed {
		t.Fatalf("salmon should be completed after toggle")
	}

	var edited groceryJSON
	do(t, srv, http.MethodPatch, "/groceries/"+bulk.Items[1].ID, "",
		map[string]string{"amount": "2 heads"}, http.StatusOK, &edited)
	if edited.Amount != "2 heads" || edited.Name != "Broccoli" {
		t.Errorf("unexpected edit result: %+v", edited)
	}

	var cmp pricing.Comparison
	do(t, srv, http.MethodGet, "/groceries/prices", "", nil, http.StatusOK, &cmp)
	if cmp.BestStore != "Lidl" {
		t.Errorf("best store = %q, want Lidl", cmp.BestStore)
	}
	if cmp.ItemCount != 2 {
		t.Errorf("priced %d items, want 2 (completed items excluded)", cmp.ItemCount)
	}
	if cmp.TotalSavings < 0 {
		t.Errorf("negative savings %f", cmp.TotalSavings)
	}

	var vegetables struct {
		Items []groceryJSON `json:"items"`
	}
	do(t, srv, http.MethodGet, "/groceries?category=Vegetables&q=broc", "", nil, http.StatusOK, &vegetables)
	if len(vegetables.Items) != 1 {
		t.Errorf("filtered list has %d items, want 1", len(vegetables.Items))
	}

	var cleared struct {
		Removed int64 `json:"removed"`
	}
	do(t, srv, http.MethodDelete, "/groceries/completed", "", nil, http.StatusOK, &cleared)
	if cleared.Removed != 1 {
		t.Errorf("cleared %d, want 1", cleared.Removed)
	}

	var suggestions struct {
		Suggestions []service.Suggestion `json:"suggestions"`
	}
	do(t, srv, http.MethodGet, "/groceries/suggestions", "", nil, http.StatusOK, &suggestions)
	for _, s := range suggestions.Suggestions {
		if s.Name == "Broccoli" {
			t.Errorf("broccoli is already on the list but was suggested")
		}
	}
}

func TestIntegration_HealthAndMetrics(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv, cleanup := newTestServer(t)
	defer cleanup()

	var health map[string]string
	do(t, srv, http.MethodGet, "/healthz", "", nil, http.StatusOK, &health)
	if health["status"] != "ok" {
		t.Errorf("health = %v", health)
	}

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `route="GET /healthz"`) {
		t.Errorf("metrics do not include the health check request:\n%s", body)
	}
}

func TestIntegration_ImportList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	srv, cleanup := newTestServer(t)
	defer cleanup()

	resp, err := http.Post(srv.URL+"/groceries/import", "text/plain",
		strings.NewReader("Milk | 1L | Dairy\n- Broccoli\n2 pounds chicken breast\n"))
	if err != nil {
		t.Fatalf("POST /groceries/import: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, b)
	}

	var imported struct {
		Items []groceryJSON `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&imported); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(imported.Items) != 3 {
		t.Fatalf("imported %d items, want 3", len(imported.Items))
	}
	if imported.Items[2].Amount != "2 pounds" {
		t.Errorf("amount = %q, want %q", imported.Items[2].Amount, "2 pounds")
	}
}
