// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
)

// Library holds every definition a run needs, keyed by ID.
type Library struct {
	Enemies    map[string]EnemyDefinition
	Structures map[string]StructureDefinition
	Upgrades   map[string]UpgradeDefinition
	Waves      WaveRules
}

// fileFormat is the on-disk shape of a definitions overlay.
type fileFormat struct {
	Enemies    []EnemyDefinition     `json:"enemies"`
	Structures []StructureDefinition `json:"structures"`
	Upgrades   []UpgradeDefinition   `json:"upgrades"`
	Waves      *WaveRules            `json:"waves,omitempty"`
}

// Default returns the compiled-in library.
func Default() *Library {
	lib := &Library{
		Enemies:    make(map[string]EnemyDefinition),
		Structures: make(map[string]StructureDefinition),
		Upgrades:   make(map[string]UpgradeDefinition),
		Waves:      defaultWaveRules(),
	}
	lib.merge(fileFormat{
		Enemies:    defaultEnemies(),
		Structures: defaultStructures(),
		Upgrades:   defaultUpgrades(),
	})
	return lib
}

// LoadFile reads a JSON overlay and applies it on top of the defaults.
// Entries replace defaults with the same ID; new IDs are added.
func LoadFile(path string) (*Library, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions file: %w", err)
	}
	lib, err := Parse(file)
	if err != nil {
		return nil, err
	}
	log.Printf("defs: loaded %d enemy, %d structure and %d upgrade definitions from %s",
		len(lib.Enemies), len(lib.Structures), len(lib.Upgrades), path)
	return lib, nil
}

// Parse applies a JSON overlay to the defaults.
func Parse(data []byte) (*Library, error) {
	var overlay fileFormat
	if err := json.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to unmarshal definitions: %w", err)
	}
	lib := Default()
	lib.merge(overlay)
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

func (l *Library) merge(f fileFormat) {
	for _, def := range f.Enemies {
		l.Enemies[def.ID] = def
	}
	for _, def := range f.Structures {
		l.Structures[def.ID] = def
	}
	for _, def := range f.Upgrades {
		l.Upgrades[def.Key] = def
	}
	if f.Waves != nil {
		l.Waves = *f.Waves
	}
}

// Validate checks cross references between definitions.
func (l *Library) Validate() error {
	boss, ok := l.Enemies[l.Waves.BossEnemyID]
	if !ok {
		return fmt.Errorf("boss enemy %q is not defined", l.Waves.BossEnemyID)
	}
	if !boss.Boss {
		return fmt.Errorf("enemy %q is used as boss but not flagged as one", boss.ID)
	}
	if err := l.Waves.validate(); err != nil {
		return err
	}
	for id, def := range l.Enemies {
		if def.Health <= 0 || def.Speed <= 0 {
			return fmt.Errorf("enemy %q needs positive health and speed", id)
		}
		if def.LifeCost < 0 || def.Bounty < 0 || def.TrampleDamage < 0 {
			return fmt.Errorf("enemy %q has a negative life cost, bounty or trample damage", id)
		}
	}
	for id, def := range l.Structures {
		switch def.Kind {
		case KindPulseTrap, KindSlowTrap, KindTurret, KindGenerator:
		default:
			return fmt.Errorf("structure %q has unknown kind %q", id, def.Kind)
		}
		if def.Placement != PlacePath && def.Placement != PlaceWall {
			return fmt.Errorf("structure %q has unknown placement %q", id, def.Placement)
		}
		if def.Cost < 0 || def.Health <= 0 {
			return fmt.Errorf("structure %q needs non-negative cost and positive health", id)
		}
	}
	return nil
}

// Clone returns a deep copy that can be tuned without touching the original.
func (l *Library) Clone() *Library {
	c := &Library{
		Enemies:    make(map[string]EnemyDefinition, len(l.Enemies)),
		Structures: make(map[string]StructureDefinition, len(l.Structures)),
		Upgrades:   make(map[string]UpgradeDefinition, len(l.Upgrades)),
		Waves:      l.Waves,
	}
	for k, v := range l.Enemies {
		c.Enemies[k] = v
	}
	for k, v := range l.Structures {
		c.Structures[k] = v
	}
	for k, v := range l.Upgrades {
		c.Upgrades[k] = v
	}
	return c
}

// StructureIDs returns structure IDs ordered by cost, then ID. The order is
// stable and is used for hotkeys in the frontends.
func (l *Library) StructureIDs() []string {
	ids := make([]string, 0, len(l.Structures))
	for id := range l.Structures {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := l.Structures[ids[i]], l.Structures[ids[j]]
		if a.Cost != b.Cost {
			return a.Cost < b.Cost
		}
		return a.ID < b.ID
	})
	return ids
}

// UpgradeKeys returns research upgrade keys in alphabetical order.
func (l *Library) UpgradeKeys() []string {
	keys := make([]string, 0, len(l.Upgrades))
	for k := range l.Upgrades {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
