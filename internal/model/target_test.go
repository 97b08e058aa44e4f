package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{10 * 1024 * 1024, "10.00 MB"},
		{1073741824, "1.00 GB"},
		{5 * 1024 * 1073741824, "5120.00 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := FormatSize(tt.bytes)
			if got != tt.expected {
				t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.expected)
			}
		})
	}
}

func TestGroupOf(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		expected SizeGroup
	}{
		{"empty", 0, SizeSmall},
		{"just under medium", 10*mib - 1, SizeSmall},
		{"medium", 10 * mib, SizeMedium},
		{"large", 100 * mib, SizeLarge},
		{"very large", gib, SizeVeryLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GroupOf(tt.size); got != tt.expected {
				t.Errorf("GroupOf(%d) = %v, want %v", tt.size, got, tt.expected)
			}
		})
	}
}

func TestGroupBySize_KeepsOrder(t *testing.T) {
	targets := []Target{
		{Path: "/a/node_modules", Size: 1},
		{Path: "/b/node_modules", Size: 2 * gib},
		{Path: "/c/node_modules", Size: 2},
	}

	groups := GroupBySize(targets)
	require.Len(t, groups[SizeSmall], 2)
	assert.Equal(t, "/a/node_modules", groups[SizeSmall][0].Path)
	assert.Equal(t, "/c/node_modules", groups[SizeSmall][1].Path)
	assert.Len(t, groups[SizeVeryLarge], 1)
}

func TestParseRemovalMode(t *testing.T) {
	tests := []struct {
		input   string
		want    RemovalMode
		wantErr bool
	}{
		{"all", ModeAll, false},
		{"ALL", ModeAll, false},
		{"unused", ModeUnused, false},
		{" interactive ", ModeInteractive, false},
		{"", ModeInteractive, false},
		{"everything", ModeInteractive, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRemovalMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) RemovalMode {
	t.Helper()
	m, err := ParseRemovalMode(s)
	require.NoError(t, err)
	return m
}

func TestSearchConfig_Validate(t *testing.T) {
	assert.NoError(t, SearchConfig{StartPath: "/tmp", MaxDepth: -1}.Validate())
	assert.NoError(t, SearchConfig{StartPath: "/tmp", MaxDepth: 3}.Validate())
	assert.Error(t, SearchConfig{StartPath: "/tmp", MaxDepth: -2}.Validate())
	assert.Error(t, SearchConfig{MaxDepth: -1}.Validate())
}

func TestSearchConfig_Name(t *testing.T) {
	assert.Equal(t, "node_modules", SearchConfig{}.Name())
	assert.Equal(t, "vendor", SearchConfig{TargetName: "vendor"}.Name())
}

func TestTargetHelpers(t *testing.T) {
	targets := []Target{
		{Path: "/code/app/node_modules", Size: 500, Unused: true},
		{Path: "/code/lib/node_modules", Size: 1500},
	}

	assert.Equal(t, int64(2000), TotalSize(targets))
	assert.Equal(t, 1, CountUnused(targets))
	assert.Equal(t, []string{"/code/app/node_modules", "/code/lib/node_modules"}, Paths(targets))
	assert.Equal(t, "app", targets[0].Name())
}

func TestTarget_Name(t *testing.T) {
	assert.Equal(t, "web", Target{Path: "/code/web/node_modules"}.Name())

	byName := map[string]Target{"x": {Path: "/code/api/node_modules"}}
	assert.Equal(t, "api", byName["x"].Name())

	var named interface{ Name() string } = Target{Path: "/code/cli/node_modules"}
	assert.Equal(t, "cli", named.Name())
}

func TestRemovalResult_Record(t *testing.T) {
	var r RemovalResult
	ok := Target{Path: "/a/node_modules", Size: 100, LastModified: time.Now()}
	bad := Target{Path: "/b/node_modules", Size: 200}
	boom := errors.New("permission denied")

	r.Record(ok, nil)
	r.Record(bad, boom)

	assert.Equal(t, 1, r.Removed)
	assert.Equal(t, int64(100), r.BytesFreed)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "/b/node_modules", r.Errors[0].Path)
	assert.ErrorIs(t, r.Errors[0], boom)
	assert.True(t, r.HasErrors())
	assert.Equal(t, "/b/node_modules: permission denied", r.Errors[0].Error())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "declined", OutcomeDeclined.String())
	assert.Equal(t, "nothing selected", OutcomeNothingSelected.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}
