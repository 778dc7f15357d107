package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/pwiecz/squad_leader/data"
	"github.com/pwiecz/squad_leader/lib"
	"github.com/pwiecz/squad_leader/losdb"
)

// Computes line of sight tables of the given scenarios and stores them in
// the database, so that sessions do not have to compute them on start.
func main() {
	if len(os.Args) < 3 {
		log.Fatalf("Usage: %s <los_database> <scenario>...\n", os.Args[0])
	}
	store, err := losdb.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Cannot open database %s (%v)", os.Args[1], err)
	}
	defer store.Close()

	tables, err := data.DefaultTables()
	if err != nil {
		log.Fatalf("Cannot read effect tables (%v)", err)
	}
	options := lib.DefaultOptions()
	ctx := context.Background()
	for _, filename := range os.Args[2:] {
		scenario, err := data.LoadScenario(os.DirFS(filepath.Dir(filename)), filepath.Base(filename))
		if err != nil {
			log.Fatalf("Cannot read scenario %s (%v)", filename, err)
		}
		hexes, err := lib.NewHexMap(scenario.Hexes, tables.Terrain, options.HindranceThreshold)
		if err != nil {
			log.Fatalf("Invalid map of scenario %s (%v)", filename, err)
		}
		table := lib.PrecomputeLOS(hexes)
		if err := store.Save(ctx, table); err != nil {
			log.Fatalf("Cannot store line of sight of %s (%v)", filename, err)
		}
		log.Printf("%s: %d hexes, fingerprint %s", scenario.Name, hexes.Len(), table.Fingerprint())
	}
}
