package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "datasyncq", cmd.Use)

	for _, name := range []string{"build", "list"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
			assert.NotNil(t, sub.Flags().Lookup("filter"))
			assert.NotNil(t, sub.Flags().Lookup("param"))
		})
	}

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestBuild(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"empty", nil, ""},
		{"filter", []string{"--filter", "id eq 'foo'"}, "$filter=%28id%20eq%20%27foo%27%29"},
		{"order", []string{"--orderby", "id,year desc"}, "$orderby=id%2Cyear%20desc"},
		{
			"everything",
			[]string{
				"--count", "--include-deleted", "--filter", "year gt 1929",
				"--orderby", "title", "--select", "id,title", "--skip", "5", "--top", "10",
				"--param", "tenant=acme co",
			},
			"$count=true&$filter=%28year%20gt%201929%29&$orderby=title&$select=id%2Ctitle&$skip=5&$top=10&__includedeleted=true&tenant=acme%20co",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			stdout, _, err := execute(t, append([]string{"build"}, c.args...)...)
			require.NoError(t, err)
			assert.Equal(t, c.want+"\n", stdout)
		})
	}
}

func TestBuildStructuredOutput(t *testing.T) {
	stdout, _, err := execute(t, "build", "--format", "json", "--top", "3")
	require.NoError(t, err)
	var result BuildResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "$top=3", result.Query)

	stdout, _, err = execute(t, "build", "--format", "yaml", "--skip", "2")
	require.NoError(t, err)
	result = BuildResult{}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "$skip=2", result.Query)
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		code int
	}{
		{"bad format", []string{"build", "--format", "xml"}, ExitCommandError},
		{"bad filter", []string{"build", "--filter", "year gt"}, ExitCommandError},
		{"bad top", []string{"build", "--top=-1"}, ExitCommandError},
		{"reserved param", []string{"build", "--param", "$top=1"}, ExitCommandError},
		{"unsupported function", []string{"build", "--filter", "normalize(title) eq 'x'"}, ExitFailure},
		{"order by function", []string{"build", "--orderby", "tolower(title)"}, ExitCommandError},
		{"bad log level", []string{"build", "--log-level", "loud"}, ExitCommandError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := execute(t, c.args...)
			require.Error(t, err)
			assert.Equal(t, c.code, GetExitCode(err))
		})
	}
}

func newService(t *testing.T) *httptest.Server {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path != "/tables/movies":
			http.Error(w, "not found", http.StatusNotFound)
		case r.URL.Query().Get("page") == "":
			fmt.Fprintf(w, `{"items":[{"id":"1"},{"id":"2"}],"count":3,"nextLink":"%s/tables/movies?page=2"}`, server.URL)
		default:
			fmt.Fprint(w, `{"items":[{"id":"3"}]}`)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestList(t *testing.T) {
	server := newService(t)

	stdout, _, err := execute(t, "list", "movies", "--endpoint", server.URL, "--count")
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":\"1\"}\n{\"id\":\"2\"}\n{\"id\":\"3\"}\n", stdout)

	stdout, _, err = execute(t, "list", "movies", "--endpoint", server.URL, "--max-pages", "1")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(stdout, "\n"))
}

func TestListUsesConfigFile(t *testing.T) {
	server := newService(t)
	path := filepath.Join(t.TempDir(), "datasync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("endpoint: %s\nlog:\n  level: debug\n  format: console\n", server.URL)), 0o600))

	stdout, stderr, err := execute(t, "list", "movies", "--config", path, "--format", "yaml")
	require.NoError(t, err)
	var items []map[string]string
	decoder := yaml.NewDecoder(strings.NewReader(stdout))
	for {
		var doc []map[string]string
		if decoder.Decode(&doc) != nil {
			break
		}
		items = append(items, doc...)
	}
	assert.Len(t, items, 3)
	assert.Contains(t, stderr, "listed")
}

func TestListErrors(t *testing.T) {
	server := newService(t)

	_, _, err := execute(t, "list", "directors", "--endpoint", server.URL)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "transport error")

	t.Setenv("DATASYNC_ENDPOINT", "")
	_, _, err = execute(t, "list", "movies")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
