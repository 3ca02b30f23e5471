package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	_ "modernc.org/sqlite"

	"lostfound/internal/config"
	"lostfound/internal/http/handlers"
	"lostfound/internal/repos"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	app := fiber.New()
	app.Use(requestid.New())
	handlers.Register(app, handlers.NewDeps(db, cfg))
	return app
}

// doJSON sends a request with an optional bearer token and decodes the
// envelope every endpoint wraps its payload in.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("%s %s: decoding body: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func register(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": "Passw0rd",
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: status %d body %v", email, status, body)
	}
	data := body["data"].(map[string]any)
	return data["token"].(string)
}

func itemPayload() map[string]any {
	return map[string]any{
		"title":           "Black umbrella",
		"description":     "Large umbrella with a wooden handle",
		"category":        "Accessories",
		"type":            "found",
		"location":        "Central library, 2nd floor",
		"dateLostOrFound": "2024-04-10",
	}
}

func TestRegisterLoginMe(t *testing.T) {
	app := newApp(t)

	token := register(t, app, "Alice", "alice@example.com")

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "Passw0rd",
	})
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("login: status %d body %v", status, body)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
	if status != http.StatusOK {
		t.Fatalf("me: status %d", status)
	}
	user := body["data"].(map[string]any)
	if user["email"] != "alice@example.com" || user["role"] != "user" {
		t.Errorf("me payload: %v", user)
	}

	status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "WrongPass1",
	})
	if status != http.StatusUnauthorized || body["success"] != false {
		t.Errorf("bad login: status %d body %v", status, body)
	}
}

func TestAuthRequired(t *testing.T) {
	app := newApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/items", "", itemPayload())
	if status != http.StatusUnauthorized || body["success"] != false {
		t.Errorf("no token: status %d body %v", status, body)
	}
	status, _ = doJSON(t, app, http.MethodPost, "/api/items", "garbage.token.value", itemPayload())
	if status != http.StatusUnauthorized {
		t.Errorf("bad token: status %d", status)
	}
}

func TestItemLifecycle(t *testing.T) {
	app := newApp(t)
	ownerTok := register(t, app, "Alice", "alice@example.com")
	finderTok := register(t, app, "Bob", "bob@example.com")

	// Report an item with owner-only details.
	payload := itemPayload()
	payload["verificationDetails"] = "brand stamp inside the canopy"
	status, body := doJSON(t, app, http.MethodPost, "/api/items", ownerTok, payload)
	if status != http.StatusCreated || body["success"] != true {
		t.Fatalf("create: status %d body %v", status, body)
	}
	if body["message"] != "Item reported successfully" {
		t.Errorf("create message: %v", body["message"])
	}
	item := body["data"].(map[string]any)
	id := item["id"].(string)
	if item["status"] != "active" {
		t.Errorf("create: status field %v", item["status"])
	}

	// Public list, no auth.
	status, body = doJSON(t, app, http.MethodGet, "/api/items?type=found", "", nil)
	if status != http.StatusOK {
		t.Fatalf("list: status %d", status)
	}
	data := body["data"].(map[string]any)
	if data["total"].(float64) != 1 {
		t.Errorf("list total: %v", data["total"])
	}
	listed := data["items"].([]any)[0].(map[string]any)
	if _, leaked := listed["verificationDetails"]; leaked {
		t.Error("list leaked verificationDetails")
	}

	// Detail: the field exists only for the owner.
	status, body = doJSON(t, app, http.MethodGet, "/api/items/"+id, finderTok, nil)
	if status != http.StatusOK {
		t.Fatalf("get as non-owner: status %d", status)
	}
	if _, leaked := body["data"].(map[string]any)["verificationDetails"]; leaked {
		t.Error("non-owner saw verificationDetails")
	}
	_, body = doJSON(t, app, http.MethodGet, "/api/items/"+id, ownerTok, nil)
	if body["data"].(map[string]any)["verificationDetails"] != "brand stamp inside the canopy" {
		t.Error("owner did not see verificationDetails")
	}

	// Mutation is ownership gated.
	status, _ = doJSON(t, app, http.MethodPut, "/api/items/"+id, finderTok, map[string]any{"title": "Mine now"})
	if status != http.StatusForbidden {
		t.Errorf("non-owner update: status %d", status)
	}
	status, body = doJSON(t, app, http.MethodPut, "/api/items/"+id, ownerTok, map[string]any{"title": "Black umbrella (wood handle)"})
	if status != http.StatusOK {
		t.Fatalf("owner update: status %d body %v", status, body)
	}

	// Claim flow.
	status, body = doJSON(t, app, http.MethodPost, "/api/items/"+id+"/claim", finderTok, nil)
	if status != http.StatusOK {
		t.Fatalf("claim: status %d body %v", status, body)
	}
	if body["message"] != "Item claimed successfully. The owner will be notified." {
		t.Errorf("claim message: %v", body["message"])
	}
	claimed := body["data"].(map[string]any)
	if claimed["status"] != "claimed" || claimed["claimedBy"] == nil {
		t.Errorf("claim result: %v", claimed)
	}
	status, body = doJSON(t, app, http.MethodPost, "/api/items/"+id+"/claim", ownerTok, nil)
	if status != http.StatusBadRequest || body["error"] == nil {
		t.Errorf("second claim: status %d body %v", status, body)
	}

	// Mine lists only the owner's reports.
	_, body = doJSON(t, app, http.MethodGet, "/api/items/mine", ownerTok, nil)
	if n := body["data"].(map[string]any)["count"].(float64); n != 1 {
		t.Errorf("mine count: %v", n)
	}
	_, body = doJSON(t, app, http.MethodGet, "/api/items/mine", finderTok, nil)
	if n := body["data"].(map[string]any)["count"].(float64); n != 0 {
		t.Errorf("finder mine count: %v", n)
	}

	// Delete, then the id is gone.
	status, _ = doJSON(t, app, http.MethodDelete, "/api/items/"+id, finderTok, nil)
	if status != http.StatusForbidden {
		t.Errorf("non-owner delete: status %d", status)
	}
	status, _ = doJSON(t, app, http.MethodDelete, "/api/items/"+id, ownerTok, nil)
	if status != http.StatusOK {
		t.Fatalf("owner delete: status %d", status)
	}
	status, _ = doJSON(t, app, http.MethodGet, "/api/items/"+id, "", nil)
	if status != http.StatusNotFound {
		t.Errorf("get after delete: status %d", status)
	}
}

func TestCreateValidationStatus(t *testing.T) {
	app := newApp(t)
	token := register(t, app, "Alice", "alice@example.com")

	payload := itemPayload()
	payload["title"] = ""
	status, body := doJSON(t, app, http.MethodPost, "/api/items", token, payload)
	if status != http.StatusBadRequest || body["success"] != false || body["error"] == nil {
		t.Errorf("invalid create: status %d body %v", status, body)
	}

	payload = itemPayload()
	payload["category"] = "Vehicles"
	status, _ = doJSON(t, app, http.MethodPost, "/api/items", token, payload)
	if status != http.StatusBadRequest {
		t.Errorf("bad category: status %d", status)
	}
}

func TestUnknownRoute(t *testing.T) {
	app := newApp(t)
	status, body := doJSON(t, app, http.MethodGet, "/api/nope", "", nil)
	if status != http.StatusNotFound || body["success"] != false {
		t.Errorf("unknown route: status %d body %v", status, body)
	}
}

func TestHealthAndWelcome(t *testing.T) {
	app := newApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health: status %d", resp.StatusCode)
	}

	status, _ := doJSON(t, app, http.MethodGet, "/", "", nil)
	if status != http.StatusOK {
		t.Errorf("welcome: status %d", status)
	}
}
