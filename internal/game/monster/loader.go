package monster

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFromBytes parses a single monster from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Monster.
// Postcondition: Returns a validated Monster, or an error.
func LoadFromBytes(data []byte) (Monster, error) {
	var m Monster
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Monster{}, fmt.Errorf("parsing monster YAML: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Monster{}, err
	}
	return m, nil
}

// LoadDir reads all *.yaml and *.yml files in dir, in directory order, and returns the parsed monsters.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all monsters or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadDir(dir string) ([]Monster, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading monster dir %q: %w", dir, err)
	}

	var monsters []Monster
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		m, err := LoadFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		monsters = append(monsters, m)
	}
	return monsters, nil
}

// LoadDatabase returns the reference table followed by any monsters found in dir.
// An empty dir yields the reference table alone.
//
// Postcondition: reference entries always precede custom entries, so a custom
// monster reusing a reference ID is never returned by FindByID.
func LoadDatabase(dir string) (*Database, error) {
	db := Reference()
	if dir == "" {
		return db, nil
	}
	custom, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	db.Merge(custom)
	return db, nil
}
