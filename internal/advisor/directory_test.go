package advisor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinDirectory(t *testing.T) {
	dir, err := LoadDirectory("")
	require.NoError(t, err)
	assert.Len(t, dir.Lawyers, 3)
	assert.Equal(t, "Advocate Priya Sharma", dir.Default)
}

func TestRecommend(t *testing.T) {
	dir, err := LoadDirectory("")
	require.NoError(t, err)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"no keywords uses default", "my neighbour built a wall", "Advocate Priya Sharma"},
		{"tie goes to default", "a tax question", "Advocate Priya Sharma"},
		{"strongest match wins", "income tax refund after audit", "Advocate Ramesh Gupta"},
		{"case insensitive", "Business LICENSE renewal", "Advocate Arjun Mehta"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dir.Recommend(tt.text).Name)
		})
	}
}

func TestLoadDirectoryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lawyers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
lawyers:
  - name: Only Counsel
    specialty: Everything
    contact: "000"
`), 0o644))

	dir, err := LoadDirectory(path)
	require.NoError(t, err)
	assert.Equal(t, "Only Counsel", dir.Recommend("anything").Name)
}

func TestParseDirectoryErrors(t *testing.T) {
	_, err := ParseDirectory([]byte("lawyers: []"))
	assert.ErrorIs(t, err, ErrEmptyDirectory)

	_, err = ParseDirectory([]byte("lawyers: [unclosed"))
	assert.Error(t, err)

	_, err = LoadDirectory(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
