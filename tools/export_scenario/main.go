package main

import (
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pwiecz/squad_leader/data"
)

// Writes a scenario, typically generated by a Lua script, as YAML to stdout.
func main() {
	if len(os.Args) != 2 {
		log.Fatalf("Usage: %s <scenario>\n", os.Args[0])
	}
	filename := os.Args[1]
	file, err := data.ReadScenarioFile(os.DirFS(filepath.Dir(filename)), filepath.Base(filename))
	if err != nil {
		log.Fatalf("Cannot read scenario %s (%v)", filename, err)
	}
	if _, err := file.Scenario(); err != nil {
		log.Fatalf("Invalid scenario %s (%v)", filename, err)
	}
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(file); err != nil {
		log.Fatalf("Cannot write scenario (%v)", err)
	}
	encoder.Close()
}
