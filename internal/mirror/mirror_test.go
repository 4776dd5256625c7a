package mirror

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapper_Map(t *testing.T) {
	m := New("/src", "/dst")

	tests := []struct {
		name       string
		abs        string
		wantRel    string
		wantTarget string
	}{
		{
			name:       "file in root",
			abs:        "/src/report.csv",
			wantRel:    "report.csv",
			wantTarget: "/dst/report.csv.gz",
		},
		{
			name:       "nested file",
			abs:        "/src/a/b/report.csv",
			wantRel:    filepath.Join("a", "b", "report.csv"),
			wantTarget: "/dst/a/b/report.csv.gz",
		},
		{
			name:       "file without extension",
			abs:        "/src/a/data",
			wantRel:    filepath.Join("a", "data"),
			wantTarget: "/dst/a/data.gz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped, err := m.Map(tt.abs)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRel, mapped.Rel)
			assert.Equal(t, filepath.FromSlash(tt.wantTarget), mapped.TargetFile)
			assert.Equal(t, filepath.Dir(mapped.TargetFile), mapped.TargetDir)
		})
	}
}

func TestMapper_Map_OutsideWatchedTree(t *testing.T) {
	m := New("/src", "/dst")

	tests := []struct {
		name string
		abs  string
	}{
		{name: "sibling tree", abs: "/other/file.txt"},
		{name: "sibling with common prefix", abs: "/src2/file.txt"},
		{name: "source root itself", abs: "/src"},
		{name: "parent of source root", abs: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Map(tt.abs)
			require.ErrorIs(t, err, ErrOutsideWatchedTree)
		})
	}
}

func TestMapper_Map_RoundTrip(t *testing.T) {
	m := New("/src", "/dst")

	for _, rel := range []string{"a.txt", "a/b.txt", "deep/er/still/data"} {
		mapped, err := m.Map(filepath.Join("/src", rel))
		require.NoError(t, err)

		// Stripping the suffix and the target prefix reproduces the
		// original relative path.
		stripped := strings.TrimSuffix(mapped.TargetFile, ".gz")
		back, err := filepath.Rel("/dst", stripped)
		require.NoError(t, err)
		assert.Equal(t, filepath.FromSlash(rel), back)
	}
}
