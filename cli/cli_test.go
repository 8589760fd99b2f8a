package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/asaidimu/go-portal/core/portal"
	"github.com/asaidimu/go-portal/core/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PORTAL_CLOCK_NOW", "2024-01-01")
	t.Setenv("PORTAL_LOG_LEVEL", "error")

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func queryIDs(t *testing.T, args ...string) []string {
	t.Helper()
	out, err := run(t, append([]string{"query", "--json"}, args...)...)
	require.NoError(t, err)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d["id"].(string))
	}
	return ids
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range NewRootCommand().Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"views", "query", "tier"})
}

func TestViewsCommand(t *testing.T) {
	out, err := run(t, "views")
	require.NoError(t, err)

	for _, v := range portal.Views() {
		assert.Contains(t, out, v.Name())
	}
	assert.Contains(t, out, portal.SeniorityField)
	assert.Contains(t, out, portal.SortEndingSoon)
	assert.Contains(t, out, "Open,Completed,Expired")
}

func TestQueryCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{"seniority bucket", []string{"employees", "--filter", "seniority=3-5"}, []string{"HH001", "HH003", "HH007"}},
		{"department and search", []string{"employees", "-f", "department=Ban Truyền Thông", "-s", "nguyễn"}, []string{"HH001", "HH006"}},
		{"all filter value", []string{"employees", "-f", "tier=All", "-f", "status=On Leave"}, []string{"HH004"}},
		{"points descending", []string{"employees", "--sort", "points:desc"}, []string{"HH002", "HH003", "HH001", "HH007", "HH004", "HH006", "HH005", "HH008"}},
		{"survey tab", []string{"surveys", "--tab", "Open"}, []string{"2", "1"}},
		{"survey comparator", []string{"surveys", "-c", portal.SortEndingSoon}, []string{"4", "3", "2", "1", "5"}},
		{"unknown tab is lenient", []string{"surveys", "--tab", "Archived"}, []string{"5", "2", "1", "3", "4"}},
		{"featured news", []string{"news-feed", "-c", portal.SortFeaturedFirst}, []string{"1", "2", "3", "4", "5"}},
		{"transactions", []string{"transactions", "-f", "type=Redeem"}, []string{"TRX002", "TRX004"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, queryIDs(t, tt.args...))
		})
	}
}

func TestQueryCommand_Table(t *testing.T) {
	out, err := run(t, "query", "employees", "-f", "seniority=>5")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "SENIORITY")
	assert.Contains(t, out, "HH002")
	assert.Contains(t, out, "Trần Thị Mai")
	assert.Contains(t, out, "1 result(s)")

	out, err = run(t, "query", "documents", "-s", "no such document")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestQueryCommand_Errors(t *testing.T) {
	_, err := run(t, "query", "payroll")
	assert.Error(t, err)

	_, err = run(t, "query", "employees", "-f", "department")
	assert.ErrorContains(t, err, "field=value")

	_, err = run(t, "query")
	assert.Error(t, err)

	_, err = run(t, "query", "surveys", "--strict", "--tab", "Archived")
	assert.ErrorIs(t, err, query.ErrUnknownTab)

	_, err = run(t, "query", "employees", "--strict", "--sort", "points:sideways")
	assert.ErrorIs(t, err, query.ErrInvalidSortDirection)
}

func TestQueryCommand_SQLiteStore(t *testing.T) {
	t.Setenv("PORTAL_STORE_DRIVER", "sqlite")
	t.Setenv("PORTAL_STORE_DSN", filepath.Join(t.TempDir(), "portal.db"))

	first := queryIDs(t, "campaigns")
	second := queryIDs(t, "campaigns")
	assert.Equal(t, []string{"2", "1", "3"}, first)
	assert.Equal(t, first, second, "an already seeded store is not seeded twice")
}

func TestRootCommand_ConfigErrors(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "absent.toml"), "views")
	assert.Error(t, err)

	_, err = run(t, "--log-level", "loud", "views")
	assert.Error(t, err)
}

func TestTierCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
		wantErr  bool
	}{
		{"gold", []string{"--points", "8200", "--months", "67"}, "Gold", false},
		{"member", []string{"--points", "10"}, "Member", false},
		{"join date", []string{"--points", "8200", "--join-date", "2018-06-01"}, "Gold", false},
		{"mistyped join date", []string{"--points", "8200", "--join-date", "someday"}, "", true},
		{"blank join date", []string{"--points", "8200", "--join-date", " "}, "", true},
		{"both months and join date", []string{"--months", "3", "--join-date", "2018-06-01"}, "", true},
		{"negative", []string{"--points", "-1"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"tier"}, tt.args...)...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, tt.expected+" "), out)
		})
	}
}
