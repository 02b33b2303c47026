package monster_test

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/damagecalc/internal/game/monster"
)

func TestNew_Valid(t *testing.T) {
	m, err := monster.New("test_monster", "Test Monster", 10, 1000, 50, 500, 0, 0.30, 10)
	require.NoError(t, err)
	assert.Equal(t, "test_monster", m.ID)
	assert.Equal(t, uint32(1000), m.HP)
	assert.Equal(t, 0.30, m.CutRate)
	assert.Empty(t, m.ImageURL)
}

func TestNew_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		display string
		hp      uint32
		cut     float64
	}{
		{"empty id", "", "x", 1, 0},
		{"empty name", "x", "", 1, 0},
		{"zero hp", "x", "x", 0, 0},
		{"negative cut", "x", "x", 1, -0.1},
		{"cut of one", "x", "x", 1, 1},
		{"cut above one", "x", "x", 1, 1.5},
		{"nan cut", "x", "x", 1, math.NaN()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := monster.New(tc.id, tc.display, 1, tc.hp, 0, 0, 0, tc.cut, 0)
			require.Error(t, err)
			assert.ErrorIs(t, err, monster.ErrInvalidMonster)
		})
	}
}

func TestNew_Property_CutRateBoundary(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cut := rapid.Float64Range(-2, 2).Draw(rt, "cut")
		hp := rapid.Uint32Range(1, 100000).Draw(rt, "hp")
		_, err := monster.New("m", "M", 1, hp, 0, 0, 0, cut, 0)
		if cut >= 0 && cut < 1 {
			assert.NoError(rt, err)
		} else {
			assert.ErrorIs(rt, err, monster.ErrInvalidMonster)
		}
	})
}

func TestWithImage_ReturnsCopy(t *testing.T) {
	m, err := monster.New("a", "A", 1, 1, 0, 0, 0, 0, 0)
	require.NoError(t, err)
	withImg := m.WithImage("https://example.com/a.png")
	assert.Empty(t, m.ImageURL)
	assert.Equal(t, "https://example.com/a.png", withImg.ImageURL)
}

func TestUnmarshalJSON_FailsClosed(t *testing.T) {
	var m monster.Monster
	err := json.Unmarshal([]byte(`{"id":"x","name":"X","hp":0,"cut_rate":0.1}`), &m)
	require.ErrorIs(t, err, monster.ErrInvalidMonster)
	assert.Equal(t, monster.Monster{}, m, "no partial value on failure")

	err = json.Unmarshal([]byte(`{"id":"x","name":"X","hp":"lots"}`), &m)
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	want, ok := monster.Reference().FindByID("kimaira")
	require.True(t, ok)
	data, err := json.Marshal(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"fixed_defense":2985`)

	var got monster.Monster
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}

func TestDatabase_AddAndFind(t *testing.T) {
	db := monster.NewDatabase()
	a, _ := monster.New("a", "Alpha", 1, 10, 0, 0, 0, 0, 0)
	b, _ := monster.New("b", "Beta", 1, 20, 0, 0, 0, 0, 0)
	db.Add(a)
	db.Add(b)

	got, ok := db.FindByID("b")
	require.True(t, ok)
	assert.Equal(t, b, got)

	got, ok = db.FindByName("Alpha")
	require.True(t, ok)
	assert.Equal(t, a, got)

	_, ok = db.FindByID("missing")
	assert.False(t, ok)
	_, ok = db.FindByName("Missing")
	assert.False(t, ok)
	assert.Equal(t, 2, db.Len())
}

func TestDatabase_DuplicateIDFirstWins(t *testing.T) {
	db := monster.NewDatabase()
	first, _ := monster.New("dup", "First", 1, 10, 0, 0, 0, 0, 0)
	second, _ := monster.New("dup", "Second", 1, 99, 0, 0, 0, 0, 0)
	db.Add(first)
	db.Add(second)

	got, ok := db.FindByID("dup")
	require.True(t, ok)
	assert.Equal(t, "First", got.Name)
	assert.Equal(t, 2, db.Len())
}

func TestDatabase_AllIsCopy(t *testing.T) {
	db := monster.Reference()
	all := db.All()
	all[0].HP = 1
	got, _ := db.FindByID(all[0].ID)
	assert.NotEqual(t, uint32(1), got.HP)
}

func TestReference_AppleBoss(t *testing.T) {
	m, ok := monster.Reference().FindByID("appleboss")
	require.True(t, ok)
	assert.Equal(t, uint32(1000), m.HP)
	assert.Equal(t, 0.48, m.CutRate)
	assert.Equal(t, uint32(1500), m.Defense)
	assert.Equal(t, uint32(7200), m.FixedDefense)
	assert.Equal(t, "https://example.com/lizpos.png", m.ImageURL)
}

func TestReference_NotFound(t *testing.T) {
	_, ok := monster.Reference().FindByID("does_not_exist")
	assert.False(t, ok)
}

func TestReference_TableContents(t *testing.T) {
	all := monster.ReferenceMonsters()
	ids := make([]string, 0, len(all))
	for _, m := range all {
		ids = append(ids, m.ID)
		assert.NoError(t, m.Validate())
	}
	assert.Equal(t, []string{
		"appleboss", "abysshell", "abyssamas", "eclipse1", "eclipse2",
		"eclipse3", "siokanboss", "odein", "kimaira",
	}, ids)

	kimaira := all[8]
	assert.Equal(t, uint32(900), kimaira.Defense)
	assert.Equal(t, uint32(2985), kimaira.FixedDefense)
	assert.Equal(t, uint32(0), kimaira.FixedReduction)
	assert.Equal(t, 0.993, kimaira.CutRate)

	eclipse1 := all[3]
	assert.Equal(t, uint32(39720), eclipse1.FixedDefense)
	assert.Equal(t, uint32(9285), eclipse1.FixedReduction)
	assert.Equal(t, uint32(125), eclipse1.ElementResistance)
}

func TestReference_FindByName(t *testing.T) {
	m, ok := monster.Reference().FindByName("オーディン")
	require.True(t, ok)
	assert.Equal(t, "odein", m.ID)
}

func TestReference_IsImmutable(t *testing.T) {
	db := monster.Reference()
	extra, _ := monster.New("extra", "Extra", 1, 1, 0, 0, 0, 0, 0)
	db.Add(extra)

	_, ok := monster.Reference().FindByID("extra")
	assert.False(t, ok, "mutating a returned database must not affect the shared table")
	assert.Len(t, monster.ReferenceMonsters(), 9)
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "golem.yaml", `
id: golem
name: Stone Golem
level: 20
hp: 800
defense: 300
fixed_defense: 1200
fixed_reduction: 50
cut_rate: 0.25
element_resistance: 80
`)
	writeFile(t, dir, "notes.txt", "ignored")

	ms, err := monster.LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, "golem", ms[0].ID)
	assert.Equal(t, 0.25, ms[0].CutRate)
}

func TestLoadDir_InvalidMonster(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "id: bad\nname: Bad\nhp: 0\n")
	_, err := monster.LoadDir(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, monster.ErrInvalidMonster)
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := monster.LoadDir("/nonexistent/monsters")
	assert.Error(t, err)
}

func TestLoadDatabase_AppendsAfterReference(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shadow.yaml", "id: appleboss\nname: Shadow Apple\nhp: 5\ncut_rate: 0\n")

	db, err := monster.LoadDatabase(dir)
	require.NoError(t, err)
	assert.Equal(t, 10, db.Len())

	m, ok := db.FindByID("appleboss")
	require.True(t, ok)
	assert.Equal(t, uint32(1000), m.HP, "reference entry wins over a later duplicate")

	m, ok = db.FindByName("Shadow Apple")
	require.True(t, ok)
	assert.Equal(t, uint32(5), m.HP)
}

func TestLoadDatabase_EmptyDir(t *testing.T) {
	db, err := monster.LoadDatabase("")
	require.NoError(t, err)
	assert.Equal(t, 9, db.Len())
}
