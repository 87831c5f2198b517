package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/rshade/postdeck/internal/api"
	"github.com/rshade/postdeck/internal/cli"
	"github.com/rshade/postdeck/internal/cli/pagination"
	"github.com/rshade/postdeck/internal/config"
	"github.com/rshade/postdeck/internal/mockapi"
)

// setupCLITest isolates the config directory and global state for one test.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// newBackend starts a mock backend with 25 users owning 3 posts each.
func newBackend(t *testing.T) string {
	t.Helper()
	users, posts := mockapi.Seed(25, 3)
	srv := httptest.NewServer(mockapi.New(users, posts, zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestUsersList_Table(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)

	out, err := execute(t, "users", "list", "--api-url", url)
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "u001")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "ada.lovelace1@example.com")
	assert.Contains(t, out, "u004")
	assert.NotContains(t, out, "u005")
	assert.Contains(t, out, "[1] 2 3 4 5 6 7")
	assert.Contains(t, out, "Page 1 of 7 (25 users)")
}

func TestUsersList_Window(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)

	out, err := execute(t, "users", "list", "--api-url", url, "--page", "6", "--limit", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "u011")
	assert.Contains(t, out, "u012")
	assert.Contains(t, out, "1 … 5 [6] 7 … 13")
	assert.Contains(t, out, "Page 6 of 13 (25 users)")
}

func TestUsersList_PickBelowMinimum(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)

	for _, pick := range []string{"0", "2"} {
		out, err := execute(t, "users", "list", "--api-url", url, "--pick", pick)
		require.NoError(t, err)
		assert.Contains(t, out, "[1] 2 3 4 … 7", "pick %s", pick)
	}
}

func TestUsersList_PageSizeFromEnv(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)
	t.Setenv(config.EnvPageSize, "10")

	out, err := execute(t, "users", "list", "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "u010")
	assert.Contains(t, out, "Page 1 of 3 (25 users)")
}

func TestUsersList_Sorted(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)

	out, err := execute(t, "users", "list", "--api-url", url, "--sort", "name:desc")
	require.NoError(t, err)

	linus := strings.Index(out, "Linus Torvalds")
	ada := strings.Index(out, "Ada Lovelace")
	require.NotEqual(t, -1, linus)
	require.NotEqual(t, -1, ada)
	assert.Less(t, linus, ada)
}

func TestUsersList_JSON(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)

	out, err := execute(t, "users", "list", "--api-url", url, "-o", "json", "--page", "2")
	require.NoError(t, err)

	var got struct {
		Users      []api.User                `json:"users"`
		Pagination pagination.PaginationMeta `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Users, 4)
	assert.Equal(t, api.ID("u005"), got.Users[0].ID)
	assert.Equal(t, 2, got.Pagination.CurrentPage)
	assert.Equal(t, 7, got.Pagination.TotalPages)
	assert.Equal(t, 25, got.Pagination.TotalItems)
	assert.True(t, got.Pagination.HasPrevious)
	assert.True(t, got.Pagination.HasNext)
}

func TestUsersList_YAML(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)

	out, err := execute(t, "users", "list", "--api-url", url, "-o", "yaml")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Contains(t, got, "users")
	assert.Contains(t, got, "pagination")
	assert.Contains(t, out, "name: Ada Lovelace")
}

func TestUsersList_PastLastPage(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)

	out, err := execute(t, "users", "list", "--api-url", url, "--page", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "No users found.")
}

func TestUsersList_InvalidFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "limit zero", args: []string{"--limit", "0"}, wantErr: pagination.ErrInvalidLimit},
		{name: "limit too large", args: []string{"--limit", "101"}, wantErr: pagination.ErrInvalidLimit},
		{name: "page zero", args: []string{"--page", "0"}, wantErr: pagination.ErrInvalidPage},
		{name: "unknown sort field", args: []string{"--sort", "age"}, wantErr: pagination.ErrInvalidSortField},
		{name: "bad sort order", args: []string{"--sort", "name:up"}, wantErr: pagination.ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			url := newBackend(t)

			args := append([]string{"users", "list", "--api-url", url}, tt.args...)
			_, err := execute(t, args...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUsersGet(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)

	out, err := execute(t, "users", "get", "u005", "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "Barbara Liskov")
	assert.Contains(t, out, "barbara5")
	assert.Contains(t, out, "Lyon")

	out, err = execute(t, "users", "get", "u005", "--api-url", url, "-o", "json")
	require.NoError(t, err)
	var user api.User
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	assert.Equal(t, "Barbara Liskov", user.Name)

	_, err = execute(t, "users", "get", "u999", "--api-url", url)
	require.ErrorIs(t, err, api.ErrAPIFailure)
}

func TestUsersCount(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)

	out, err := execute(t, "users", "count", "--api-url", url)
	require.NoError(t, err)
	assert.Equal(t, "25 users\n", out)

	out, err = execute(t, "users", "count", "--api-url", url, "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"count": 25}`, out)
}

func TestUsersCount_BackendDown(t *testing.T) {
	setupCLITest(t)
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	_, err := execute(t, "users", "count", "--api-url", url)
	require.ErrorIs(t, err, api.ErrNetworkFailure)
}

func TestPostsList(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)

	out, err := execute(t, "posts", "list", "--user", "u003", "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "Note 1 from Linus")
	assert.Contains(t, out, "Note 3 from Linus")
	assert.NotContains(t, out, "from Ada")

	out, err = execute(t, "posts", "list", "-u", "u999", "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "No posts found.")

	_, err = execute(t, "posts", "list", "--api-url", url)
	require.ErrorIs(t, err, cli.ErrUserRequired)
}

func TestPostsCreate(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)

	out, err := execute(t, "posts", "create", "--api-url", url,
		"--user", "u003", "--title", "  Hello  ", "--body", "First post")
	require.NoError(t, err)
	assert.Equal(t, "Post created successfully (id 76)\n", out)

	out, err = execute(t, "posts", "list", "--user", "u003", "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "First post")
}

func TestPostsCreate_JSON(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)

	out, err := execute(t, "posts", "create", "--api-url", url, "-o", "json",
		"--user", "u001", "--title", "Hi", "--body", "There")
	require.NoError(t, err)

	var post api.Post
	require.NoError(t, json.Unmarshal([]byte(out), &post))
	assert.Equal(t, api.ID("76"), post.ID)
	assert.Equal(t, api.ID("u001"), post.UserID)
	assert.Equal(t, "Hi", post.Title)
}

func TestPostsCreate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing user", args: []string{"--title", "t", "--body", "b"}},
		{name: "blank title", args: []string{"--user", "u001", "--title", "   ", "--body", "b"}},
		{name: "missing body", args: []string{"--user", "u001", "--title", "t"}},
		{name: "title too long", args: []string{"--user", "u001", "--title", strings.Repeat("x", 201), "--body", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			url := newBackend(t)

			args := append([]string{"posts", "create", "--api-url", url}, tt.args...)
			_, err := execute(t, args...)
			require.ErrorIs(t, err, api.ErrInvalidPost)
		})
	}
}

func TestPostsDelete(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)

	out, err := execute(t, "posts", "delete", "1", "--yes", "--api-url", url)
	require.NoError(t, err)
	assert.Equal(t, "Post deleted successfully\n", out)

	out, err = execute(t, "posts", "list", "--user", "u001", "--api-url", url)
	require.NoError(t, err)
	assert.NotContains(t, out, "Note 1 from Ada")
	assert.Contains(t, out, "Note 2 from Ada")

	_, err = execute(t, "posts", "delete", "1", "-y", "--api-url", url)
	require.ErrorIs(t, err, api.ErrAPIFailure)
}

func TestPostsDelete_RequiresConfirmation(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)

	_, err := execute(t, "posts", "delete", "1", "--api-url", url)
	require.ErrorIs(t, err, cli.ErrNotConfirmed)

	out, err := execute(t, "posts", "list", "--user", "u001", "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "Note 1 from Ada")
}

func TestBrowse_NeedsTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("running attached to a terminal")
	}
	setupCLITest(t)

	_, err := execute(t, "browse")
	require.ErrorIs(t, err, cli.ErrNotTerminal)
}

func TestVersion(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "postdeck "))

	out, err = execute(t, "version", "-o", "json")
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "go_version")
}

func TestInvalidOutputFlag(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "users", "count", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading configuration")
}

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)
	path := filepath.Join(home, "config.yaml")

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
}

func TestConfigInit_CustomPath(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "nested", "postdeck.yaml")

	_, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), config.DefaultBaseURL)
}

func TestConfigValidate(t *testing.T) {
	home := setupCLITest(t)

	out, err := execute(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "API URL: "+config.DefaultBaseURL)
	assert.Contains(t, out, "Cache: disabled")

	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  page_size: 0\n"), 0o600))

	_, err = execute(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")

	// Other commands refuse to run on the broken file.
	_, err = execute(t, "users", "count")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading configuration")
}

func TestConfigShow(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvNotifyTTL, "5s")

	out, err := execute(t, "config", "show", "--api-url", "http://api.example:8080")
	require.NoError(t, err)

	var got struct {
		API struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"api"`
		Notifications struct {
			TTL string `yaml:"ttl"`
		} `yaml:"notifications"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "http://api.example:8080", got.API.BaseURL)
	assert.Equal(t, "5s", got.Notifications.TTL)
}

func TestSetup_SkipBackendCheck(t *testing.T) {
	home := setupCLITest(t)

	out, err := execute(t, "setup", "--non-interactive", "--skip-backend-check")
	require.NoError(t, err)

	assert.Contains(t, out, "[OK] postdeck v")
	assert.Contains(t, out, "[OK] Created "+filepath.Join(home, "cache"))
	assert.Contains(t, out, "[OK] Initialized config")
	assert.Contains(t, out, "[SKIP] Skipped backend check")
	assert.Contains(t, out, "Setup complete!")
	assert.DirExists(t, filepath.Join(home, "logs"))
	assert.FileExists(t, filepath.Join(home, "config.yaml"))

	// A second run keeps the existing config.
	out, err = execute(t, "setup", "--non-interactive", "--skip-backend-check")
	require.NoError(t, err)
	assert.Contains(t, out, "Config already exists")
	assert.Contains(t, out, "Directory exists")
}

func TestSetup_BackendCheck(t *testing.T) {
	setupCLITest(t)
	url := newBackend(t)

	out, err := execute(t, "setup", "--non-interactive", "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "[OK] Backend at "+url+" is serving 25 users")
}

func TestSetup_BackendDownIsWarning(t *testing.T) {
	setupCLITest(t)
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	out, err := execute(t, "setup", "--non-interactive", "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "[WARN] Backend at "+url+" did not answer")
	assert.Contains(t, out, "Setup complete!")
}
