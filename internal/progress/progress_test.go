package progress

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"go-dungeon-defense/internal/defs"
)

func TestResearchAward(t *testing.T) {
	tests := []struct {
		name string
		run  RunResult
		want int
	}{
		{"loss early", RunResult{WavesSurvived: 3, Kills: 25}, 3*3 + 2},
		{"victory", RunResult{Won: true, WavesSurvived: 20, Kills: 200}, 60 + 20 + 25},
		{"nothing", RunResult{}, 0},
	}
	for _, tt := range tests {
		if got := ResearchAward(tt.run); got != tt.want {
			t.Errorf("%s: award = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestRankFor(t *testing.T) {
	cases := map[int]int{0: 0, 2: 0, 3: 1, 8: 2, 30: 10, 300: 10}
	for wins, want := range cases {
		if got := RankFor(wins); got != want {
			t.Errorf("RankFor(%d) = %d, want %d", wins, got, want)
		}
	}
}

func TestRecordRun(t *testing.T) {
	s := NewState()
	award := s.RecordRun(RunResult{RunID: "a", Won: true, WavesSurvived: 20, Kills: 40})
	if award != 60+4+25 || s.Research != award {
		t.Errorf("unexpected award %d / research %d", award, s.Research)
	}
	s.RecordRun(RunResult{RunID: "b", WavesSurvived: 7, Kills: 5})
	if s.Wins != 1 || s.Losses != 1 || s.LifetimeKills != 45 || s.BestWave != 20 || s.LastRunID != "b" {
		t.Errorf("counters not folded correctly: %+v", s)
	}
}

func TestPurchase(t *testing.T) {
	lib := defs.Default()
	s := NewState()
	s.Research = 25

	if err := s.Purchase(lib, defs.UpgradeTurretDamage); err != nil {
		t.Fatalf("first level should be affordable: %v", err)
	}
	if s.Research != 15 || s.Level(defs.UpgradeTurretDamage) != 1 {
		t.Fatalf("level 1 should cost 10, state %+v", s)
	}
	if cost, _ := s.NextCost(lib, defs.UpgradeTurretDamage); cost != 20 {
		t.Errorf("level 2 should cost 20, got %d", cost)
	}
	if err := s.Purchase(lib, defs.UpgradeTurretDamage); !errors.Is(err, ErrInsufficientResearch) {
		t.Errorf("expected ErrInsufficientResearch, got %v", err)
	}
}

func TestPurchaseRejections(t *testing.T) {
	lib := defs.Default()
	s := NewState()
	s.Research = 15

	if err := s.Purchase(lib, "nope"); !errors.Is(err, ErrUnknownUpgrade) {
		t.Errorf("expected ErrUnknownUpgrade, got %v", err)
	}
	if err := s.Purchase(lib, defs.UpgradeBounty); err != nil {
		t.Fatalf("bounty level 1 costs 15: %v", err)
	}
	if err := s.Purchase(lib, defs.UpgradeBounty); !errors.Is(err, ErrInsufficientResearch) {
		t.Errorf("expected ErrInsufficientResearch, got %v", err)
	}
	if s.Research != 0 || s.Level(defs.UpgradeBounty) != 1 {
		t.Errorf("rejected purchase changed state: %+v", s)
	}

	s.Upgrades[defs.UpgradeBounty] = 3
	s.Research = 1000
	if err := s.Purchase(lib, defs.UpgradeBounty); !errors.Is(err, ErrUpgradeMaxed) {
		t.Errorf("expected ErrUpgradeMaxed, got %v", err)
	}
	if s.Research != 1000 {
		t.Errorf("maxed purchase must not spend research, have %d", s.Research)
	}
}

func TestModifiers(t *testing.T) {
	lib := defs.Default()
	s := NewState()
	if m := s.Modifiers(lib); m != DefaultModifiers() {
		t.Errorf("fresh state should give neutral modifiers, got %+v", m)
	}

	s.Upgrades[defs.UpgradeTurretDamage] = 2
	s.Upgrades[defs.UpgradeFireRate] = 2
	s.Upgrades[defs.UpgradeStartingGold] = 3
	s.Upgrades[defs.UpgradeWeakenEnemies] = 5
	s.Upgrades[defs.UpgradeExtraLives] = 1
	s.Wins = 6

	m := s.Modifiers(lib)
	if math.Abs(m.TurretDamage-1.2) > 1e-9 {
		t.Errorf("turret damage = %v, want 1.2", m.TurretDamage)
	}
	if math.Abs(m.Cooldown-0.9025) > 1e-9 {
		t.Errorf("cooldown = %v, want 0.9025", m.Cooldown)
	}
	if m.StartingGold != 75 || m.ExtraLives != 2 {
		t.Errorf("flat bonuses wrong: %+v", m)
	}
	if math.Abs(m.EnemyHealth-0.8) > 1e-9 {
		t.Errorf("enemy health = %v, want 0.8", m.EnemyHealth)
	}
	if math.Abs(m.Rank-1.1) > 1e-9 {
		t.Errorf("rank multiplier = %v, want 1.1", m.Rank)
	}
}

func TestLoadMissingGivesDefaults(t *testing.T) {
	s, err := Load(NewMemoryStore(nil), defs.Default())
	if err != nil {
		t.Fatalf("missing save is not an error: %v", err)
	}
	if s.Research != 0 || len(s.Upgrades) != 0 {
		t.Errorf("expected fresh state, got %+v", s)
	}
}

func TestLoadCorruptResetsAndRewrites(t *testing.T) {
	store := NewMemoryStore([]byte("{not json"))
	s, err := Load(store, defs.Default())
	if err != nil {
		t.Fatalf("corruption should be recovered: %v", err)
	}
	if s.Research != 0 {
		t.Errorf("expected defaults, got %+v", s)
	}
	if _, err := store.Load(); err != nil {
		t.Errorf("defaults should have been written back, reload failed: %v", err)
	}
}

func TestLoadCorruptWithBrokenDisk(t *testing.T) {
	store := NewMemoryStore([]byte("garbage"))
	store.FailSave = true
	s, err := Load(store, defs.Default())
	if err == nil {
		t.Fatal("failed rewrite should be reported")
	}
	if s == nil || s.Upgrades == nil {
		t.Fatal("a usable default state is still returned")
	}
}

type failingStore struct{ *MemoryStore }

func (failingStore) Load() (*State, error) { return nil, errors.New("disk unavailable") }

func TestLoadReadFailureDoesNotRewrite(t *testing.T) {
	store := failingStore{NewMemoryStore(nil)}
	s, err := Load(store, defs.Default())
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
	if s == nil || s.Research != 0 {
		t.Fatal("a usable default state is still returned")
	}
	if store.Raw() != nil {
		t.Error("defaults must not be written over an unreadable store")
	}
}

func TestLoadNormalizes(t *testing.T) {
	raw := []byte(`{"research":-4,"upgrades":{"bounty":9,"ghost":2,"fire_rate":0},"wins":7}`)
	s, err := Load(NewMemoryStore(raw), defs.Default())
	if err != nil {
		t.Fatal(err)
	}
	if s.Research != 0 {
		t.Errorf("negative research should clamp to 0, got %d", s.Research)
	}
	if s.Level(defs.UpgradeBounty) != 3 {
		t.Errorf("bounty should clamp to max 3, got %d", s.Level(defs.UpgradeBounty))
	}
	if _, ok := s.Upgrades["ghost"]; ok {
		t.Error("unknown upgrades should be dropped")
	}
	if _, ok := s.Upgrades[defs.UpgradeFireRate]; ok {
		t.Error("zero levels should be dropped")
	}
	if s.Rank != 2 {
		t.Errorf("rank should be recomputed from wins, got %d", s.Rank)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "progress.json")
	store := NewFileStore(path)
	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first save, got %v", err)
	}

	s := NewState()
	s.Research = 42
	s.Upgrades[defs.UpgradeTrapDamage] = 2
	if err := store.Save(s); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}

	got, err := Load(store, defs.Default())
	if err != nil {
		t.Fatal(err)
	}
	if got.Research != 42 || got.Level(defs.UpgradeTrapDamage) != 2 {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("\x00\x01"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Load(); !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}

func TestLevelStore(t *testing.T) {
	store, err := NewLevelStore(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatalf("open leveldb: %v", err)
	}
	defer store.Close()

	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty db, got %v", err)
	}

	s := NewState()
	s.Wins = 4
	if err := store.Save(s); err != nil {
		t.Fatal(err)
	}
	got, err := Load(store, defs.Default())
	if err != nil {
		t.Fatal(err)
	}
	if got.Wins != 4 || got.Rank != 1 {
		t.Errorf("unexpected state %+v", got)
	}

	if err := store.PutRaw([]byte("][")); err != nil {
		t.Fatal(err)
	}
	fresh, err := Load(store, defs.Default())
	if err != nil || fresh.Wins != 0 {
		t.Errorf("corrupt value should reset to defaults, got %+v / %v", fresh, err)
	}
}

func TestClone(t *testing.T) {
	s := NewState()
	s.Upgrades["bounty"] = 1
	c := s.Clone()
	c.Upgrades["bounty"] = 2
	if s.Upgrades["bounty"] != 1 {
		t.Error("clone must not share the upgrades map")
	}
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	file, err := OpenStore(BackendFile, filepath.Join(dir, "save.json"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := file.(*FileStore); !ok {
		t.Errorf("file backend returned %T", file)
	}
	db, err := OpenStore(BackendLevelDB, filepath.Join(dir, "db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, ok := db.(*LevelStore); !ok {
		t.Errorf("leveldb backend returned %T", db)
	}
	if _, err := OpenStore("redis", dir); err == nil {
		t.Error("unknown backend should fail")
	}
}
