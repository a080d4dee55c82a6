package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, method, target, contentType string, body io.Reader, bearer string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func login(t *testing.T, app *TestApp, username, password string) (access, refresh string) {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	status, body := call(t, http.MethodPost, app.AuthServer.URL+"/auth/token",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()), "")
	require.Equal(t, http.StatusOK, status, string(body))

	var pair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(body, &pair))
	return pair.AccessToken, pair.RefreshToken
}

func TestEndToEnd_Postgres(t *testing.T) {
	app := setupTestApp(t)
	auth := app.AuthServer.URL + "/auth"
	notes := app.NotesServer.URL + "/note/notes"

	status, body := call(t, http.MethodPost, auth+"/signup", "application/json",
		strings.NewReader(`{"username":"alice","password":"s3cret","first_name":"Alice"}`), "")
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.JSONEq(t, `{"message":"User created successfully","user_id":1}`, string(body))

	status, body = call(t, http.MethodPost, auth+"/signup", "application/json",
		strings.NewReader(`{"username":"alice","password":"other","first_name":"A"}`), "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"detail":"Username already registered"}`, string(body))

	access, refresh := login(t, app, "alice", "s3cret")

	status, body = call(t, http.MethodGet, auth+"/profile", "", nil, access)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"username":"alice"`)

	status, _ = call(t, http.MethodPost, auth+"/refresh?refresh_token="+url.QueryEscape(refresh), "", nil, "")
	assert.Equal(t, http.StatusOK, status)

	status, body = call(t, http.MethodPost, notes, "application/json",
		strings.NewReader(`{"title":"Shopping","content":"milk"}`), access)
	require.Equal(t, http.StatusCreated, status, string(body))

	var note struct {
		ID     int64  `json:"id"`
		UserID int64  `json:"user_id"`
		Title  string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(body, &note))
	assert.Equal(t, int64(1), note.UserID)

	status, body = call(t, http.MethodPut, notes+"/1", "application/json", strings.NewReader(`{"content":"eggs"}`), access)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"title":"Shopping"`)
	assert.Contains(t, string(body), `"content":"eggs"`)

	status, _ = call(t, http.MethodPost, auth+"/signup", "application/json",
		strings.NewReader(`{"username":"bob","password":"hunter2","first_name":"Bob"}`), "")
	require.Equal(t, http.StatusCreated, status)
	bob, _ := login(t, app, "bob", "hunter2")

	status, _ = call(t, http.MethodGet, notes+"/1", "", nil, bob)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = call(t, http.MethodDelete, notes+"/1", "", nil, bob)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = call(t, http.MethodDelete, notes+"/1", "", nil, access)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Note deleted successfully"}`, string(body))

	status, body = call(t, http.MethodGet, notes, "", nil, access)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, _ = call(t, http.MethodGet, app.NotesServer.URL+"/ready", "", nil, "")
	assert.Equal(t, http.StatusOK, status)
}
