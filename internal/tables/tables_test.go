package tables

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/talentmatch/internal/skills"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	set, err := Load(Files{})
	require.NoError(t, err)
	assert.True(t, set.Synonyms.Has("java"))
	assert.True(t, set.Locations.IsMatch("Pune", "India"))
}

func TestLoadSynonyms_Merge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	writeFile(t, path, `
groups:
  Rust: [rust, rustlang]
  java: [java, jvm]
`)
	table, err := LoadSynonyms(path)
	require.NoError(t, err)

	assert.Equal(t, skills.MatchExpansion, table.Match("rustlang", "rust"))
	assert.Equal(t, []string{"java", "jvm"}, table.Expansions("java"))
	assert.True(t, table.Has("python"), "built-in groups are kept")
}

func TestLoadSynonyms_Replace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	writeFile(t, path, `
replace: true
groups:
  go: [go, golang]
`)
	table, err := LoadSynonyms(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	assert.False(t, table.Has("java"))
}

func TestLoadLocations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.yaml")
	writeFile(t, path, `
regions:
  germany: [germany, berlin, munich]
`)
	table, err := LoadLocations(path)
	require.NoError(t, err)
	assert.True(t, table.IsMatch("Berlin", "GERMANY"))
	assert.True(t, table.IsMatch("Pune", "India"))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "groups: [not, a, map")

	_, err := Load(Files{Synonyms: bad})
	assert.Error(t, err)

	_, err = Load(Files{Locations: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

func TestSaveSynonyms_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	orig := skills.NewSynonymTable(map[string][]string{"go": {"go", "golang"}})
	require.NoError(t, SaveSynonyms(path, orig))

	loaded, err := LoadSynonyms(path)
	require.NoError(t, err)
	assert.Equal(t, orig.Groups(), loaded.Groups())
}

func TestFiles_Paths(t *testing.T) {
	assert.Empty(t, Files{}.Paths())
	assert.Equal(t, []string{"a.yaml"}, Files{Locations: "a.yaml"}.Paths())
}

func TestReloader_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "synonyms.yaml")
	writeFile(t, path, "groups:\n  go: [go]\n")

	var applied atomic.Pointer[Set]
	r := NewReloader(Files{Synonyms: path}, func(s *Set) { applied.Store(s) }, nil, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, r.Start(ctx))
	defer r.Stop()

	writeFile(t, path, "groups:\n  go: [go, golang]\n")

	require.Eventually(t, func() bool {
		s := applied.Load()
		return s != nil && s.Synonyms.Match("golang", "go") == skills.MatchExpansion
	}, 3*time.Second, 20*time.Millisecond)
}

func TestReloader_KeepsTablesOnBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "synonyms.yaml")
	writeFile(t, path, "groups:\n  go: [go]\n")

	var calls, failures atomic.Int32
	r := NewReloader(Files{Synonyms: path}, func(*Set) { calls.Add(1) }, nil, WithDebounce(20*time.Millisecond)).
		OnError(func(error) { failures.Add(1) })
	r.reload(path)
	assert.Equal(t, int32(1), calls.Load())

	writeFile(t, path, "groups: [broken")
	r.reload(path)
	assert.Equal(t, int32(1), calls.Load(), "a failed load must not be applied")
	assert.Equal(t, int32(1), failures.Load())
}

func TestReloader_NoFiles(t *testing.T) {
	r := NewReloader(Files{}, nil, nil)
	require.NoError(t, r.Start(context.Background()))
	r.Stop()
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "locations.yaml")
	writeFile(t, watched, "regions: {}\n")

	var calls atomic.Int32
	w := NewWatcher([]string{watched}, func(string) { calls.Add(1) }, WithDebounce(20*time.Millisecond))
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeFile(t, filepath.Join(dir, "other.yaml"), "x: 1\n")
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
