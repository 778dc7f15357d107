package losdb

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pwiecz/squad_leader/lib"
)

func testTable(t *testing.T) *lib.LOSTable {
	t.Helper()
	var hexes []lib.Hex
	for i := 0; i < 5; i++ {
		terrain := lib.NewTerrainSet(lib.OpenGround)
		if i == 1 || i == 2 {
			terrain = lib.NewTerrainSet(lib.Woods)
		}
		hexes = append(hexes, lib.Hex{
			ID:      lib.HexID([]string{"a", "b", "c", "d", "e"}[i]),
			Coords:  lib.HexCoords{Q: i, R: 0},
			Terrain: terrain})
	}
	m, err := lib.NewHexMap(hexes, lib.DefaultTerrainChart(), 5)
	if err != nil {
		t.Fatal("Error creating map,", err)
	}
	return lib.PrecomputeLOS(m)
}

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path)
	if err != nil {
		t.Fatal("Error opening store,", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "los.db")
	store := openStore(t, path)
	table := testTable(t)

	if err := store.Save(ctx, table); err != nil {
		t.Fatal("Error saving table,", err)
	}
	loaded, err := store.Load(ctx, table.Fingerprint())
	if err != nil {
		t.Fatal("Error loading table,", err)
	}
	if !reflect.DeepEqual(loaded, table) {
		t.Error("Loaded table differs from the saved one")
	}
	if visible, _ := loaded.LineOfSight("a", "d"); visible {
		t.Error("a and d should be separated by two woods hexes")
	}

	if err := store.Save(ctx, table); err != nil {
		t.Fatal("Error saving the table again,", err)
	}
	store.Close()

	reopened := openStore(t, path)
	loaded, err = reopened.Load(ctx, table.Fingerprint())
	if err != nil {
		t.Fatal("Error loading table after reopening,", err)
	}
	if !reflect.DeepEqual(loaded, table) {
		t.Error("Loaded table differs from the saved one")
	}
}

func TestLoadMissingTable(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "los.db"))
	if _, err := store.Load(context.Background(), "unknown"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Error("Expected an error for an empty path")
	}
}

func TestUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE x (id INTEGER);\n-- +migrate Down\nDROP TABLE x;\n"
	if got := upMigration(content); got != "\nCREATE TABLE x (id INTEGER);\n" {
		t.Errorf("Unexpected up migration %q", got)
	}
	if got := upMigration("SELECT 1;"); got != "SELECT 1;" {
		t.Errorf("Unexpected up migration %q", got)
	}
}
