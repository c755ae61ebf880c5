package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus/godiscord/internal/discord"
	"github.com/nexus/godiscord/internal/models"
)

const modalPayload = `{
	"type": 5,
	"id": "1",
	"application_id": "2",
	"data": {
		"custom_id": "feedback_form",
		"components": [
			{"type": 1, "components": [{"type": 4, "custom_id": "subject", "value": "hello"}]}
		]
	},
	"guild_id": "7",
	"channel_id": "3",
	"member": {"user": {"id": "9", "username": "sam"}},
	"token": "tok",
	"version": 1,
	"locale": "en-US"
}`

func testStore(t *testing.T) *SubmissionStore {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewSubmissionStore(db)
	require.NoError(t, store.Init())
	return store
}

func testApp(t *testing.T, store *SubmissionStore, service *discord.Service) *fiber.App {
	t.Helper()
	app := fiber.New()
	ih := NewInteractionHandler(store)
	sh := NewSubmissionHandler(store, service)

	app.Post("/interactions", ih.Handle)
	app.Get("/v1/submissions", sh.List)
	app.Get("/v1/submissions/:id", sh.Get)
	app.Get("/v1/stats", sh.Stats)
	app.Post("/v1/submissions/:id/respond", sh.Respond)
	app.Post("/v1/submissions/:id/defer", sh.Defer)
	app.Post("/v1/submissions/:id/followups", sh.CreateFollowup)
	app.Delete("/v1/submissions/:id/followups/:message_id", sh.DeleteFollowup)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestPingAnsweredWithPong(t *testing.T) {
	app := testApp(t, testStore(t), nil)

	resp := postJSON(t, app, "/interactions", `{"type":1}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out models.InteractionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, models.ResponsePong, out.Type)
}

func TestModalSubmissionStoredAndAcked(t *testing.T) {
	store := testStore(t)
	app := testApp(t, store, nil)

	resp := postJSON(t, app, "/interactions", modalPayload)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var ack models.InteractionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	assert.Equal(t, models.ResponseDeferredChannelMessage, ack.Type)

	subs, err := store.List("feedback_form")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "1", subs[0].InteractionID)
	assert.Equal(t, "9", subs[0].UserID)
	assert.Equal(t, "tok", subs[0].Token)
	require.NotNil(t, subs[0].GuildID)
	assert.Equal(t, "7", *subs[0].GuildID)
	assert.JSONEq(t, `{"subject": "hello"}`, subs[0].Inputs)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, DBStats{Submissions: 1, Guilds: 1, Users: 1}, stats)
}

func TestStoredSubmissionHidesToken(t *testing.T) {
	store := testStore(t)
	app := testApp(t, store, nil)
	postJSON(t, app, "/interactions", modalPayload)

	req := httptest.NewRequest("GET", "/v1/submissions", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "tok")
}

func TestInvalidModalPayloadRejected(t *testing.T) {
	app := testApp(t, testStore(t), nil)

	// No user and no member.
	resp := postJSON(t, app, "/interactions", `{
		"type": 5, "id": "1", "application_id": "2",
		"data": {"custom_id": "x", "components": []},
		"channel_id": "3", "token": "t", "version": 1, "locale": "en-US"
	}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUnsupportedInteractionTypeRejected(t *testing.T) {
	app := testApp(t, testStore(t), nil)

	resp := postJSON(t, app, "/interactions", `{"type":2}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestResponseOperationsUseStoredToken(t *testing.T) {
	var paths []string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete || strings.HasSuffix(r.URL.Path, "/callback") {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_ = json.NewEncoder(w).Encode(models.Message{ID: "55"})
	}))
	defer api.Close()

	rest := discord.NewClient("2", "")
	rest.BaseURL = api.URL
	store := testStore(t)
	app := testApp(t, store, discord.NewService(rest))

	postJSON(t, app, "/interactions", modalPayload)
	subs, err := store.List("")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	id := subs[0].ID

	resp := postJSON(t, app, "/v1/submissions/"+id+"/respond", `{"kind":"message","content":"done","ephemeral":true}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/v1/submissions/"+id+"/followups", `{"content":"more"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest("DELETE", "/v1/submissions/"+id+"/followups/55", nil)
	delResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, delResp.StatusCode)

	assert.Equal(t, []string{
		"POST /interactions/1/tok/callback",
		"POST /webhooks/2/tok",
		"DELETE /webhooks/2/tok/messages/55",
	}, paths)
}

func TestAlreadyDeletedFollowupSurfacesAPIError(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Unknown Message", "code": 10008}`))
	}))
	defer api.Close()

	rest := discord.NewClient("2", "")
	rest.BaseURL = api.URL
	store := testStore(t)
	app := testApp(t, store, discord.NewService(rest))

	postJSON(t, app, "/interactions", modalPayload)
	subs, _ := store.List("")
	require.Len(t, subs, 1)

	req := httptest.NewRequest("DELETE", "/v1/submissions/"+subs[0].ID+"/followups/55", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Unknown Message", body["error"])
	assert.Equal(t, float64(10008), body["code"])
}

func TestRespondRejectsUnknownKind(t *testing.T) {
	store := testStore(t)
	app := testApp(t, store, discord.NewService(discord.NewClient("2", "")))

	postJSON(t, app, "/interactions", modalPayload)
	subs, _ := store.List("")
	require.Len(t, subs, 1)

	resp := postJSON(t, app, "/v1/submissions/"+subs[0].ID+"/respond", `{"kind":"sparkles"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUnknownSubmissionIs404(t *testing.T) {
	app := testApp(t, testStore(t), nil)

	req := httptest.NewRequest("GET", "/v1/submissions/nope", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
