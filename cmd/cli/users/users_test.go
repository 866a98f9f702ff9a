package users

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crucial707/user-api/cmd/cli/config"
	"github.com/crucial707/user-api/internal/models"
	"github.com/spf13/cobra"
)

// setup points the CLI at srv and stores a token in a temp file.
func setup(t *testing.T, srv *httptest.Server) {
	t.Helper()
	t.Setenv("USERS_API_URL", srv.URL)
	t.Setenv("USERSCTL_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))
	if err := config.SaveToken("test-token"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestListUsers_TableOutput(t *testing.T) {
	users := []models.User{
		{ID: 1, Name: "alice", Email: "a@x.com"},
		{ID: 2, Name: "bob", Email: "b@x.com"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization header: %q", got)
		}
		_ = json.NewEncoder(w).Encode(users)
	}))
	defer srv.Close()
	setup(t, srv)

	out, err := run(t, listUsersCmd())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "alice") || !strings.Contains(out, "b@x.com") {
		t.Fatalf("expected users in output, got: %s", out)
	}
}

func TestListUsers_JSONOutput(t *testing.T) {
	users := []models.User{
		{ID: 1, Name: "alice", Email: "a@x.com"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(users)
	}))
	defer srv.Close()
	setup(t, srv)

	out, err := run(t, listUsersCmd(), "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, `"name": "alice"`) {
		t.Fatalf("expected JSON output, got: %s", out)
	}
}

func TestUpdateUser_SendsOnlyChangedFields(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PUT" || r.URL.Path != "/users/3" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(models.User{ID: 3, Name: "carol", Email: got["email"]})
	}))
	defer srv.Close()
	setup(t, srv)

	if _, err := run(t, updateUserCmd(), "3", "--email", "c@new.com"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(got) != 1 || got["email"] != "c@new.com" {
		t.Errorf("payload: got %v, want only email", got)
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"user not found"}`))
	}))
	defer srv.Close()
	setup(t, srv)

	_, err := run(t, deleteUserCmd(), "9")
	if err == nil || !strings.Contains(err.Error(), "user not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestGetUser_InvalidID(t *testing.T) {
	if _, err := run(t, getUserCmd(), "abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

func TestListUsers_NotLoggedIn(t *testing.T) {
	t.Setenv("USERSCTL_TOKEN_FILE", filepath.Join(t.TempDir(), "missing"))

	_, err := run(t, listUsersCmd())
	if !errors.Is(err, config.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}
