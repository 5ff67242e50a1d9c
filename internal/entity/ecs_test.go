package entity

import (
	"testing"

	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/types"
)

func TestNewEntityNeverReusesIDs(t *testing.T) {
	ecs := NewECS()
	a := ecs.NewEntity()
	ecs.Enemies[a] = &component.Enemy{}
	ecs.MarkForRemoval(a)
	ecs.Flush()
	b := ecs.NewEntity()
	if b == a {
		t.Fatalf("id %d was reused after removal", a)
	}
	if _, ok := ecs.Enemies[a]; ok {
		t.Error("removed enemy should be gone")
	}
}

func TestMarkedEntitiesSurviveUntilFlush(t *testing.T) {
	ecs := NewECS()
	id := ecs.NewEntity()
	ecs.Positions[id] = &component.Position{X: 1}
	ecs.Enemies[id] = &component.Enemy{State: component.EnemyDefeated}
	ecs.MarkForRemoval(id)

	if _, ok := ecs.Positions[id]; !ok {
		t.Fatal("marked entity must stay resolvable until the cleanup phase")
	}
	if !ecs.IsMarked(id) || ecs.PendingCount() != 1 {
		t.Error("entity should be pending")
	}
	if n := ecs.Flush(); n != 1 {
		t.Errorf("expected 1 removal, got %d", n)
	}
	if _, ok := ecs.Positions[id]; ok {
		t.Error("position should be removed after flush")
	}
	if ecs.PendingCount() != 0 {
		t.Error("pending set should be empty after flush")
	}
}

func TestAliveEnemyIgnoresRemovedStates(t *testing.T) {
	ecs := NewECS()
	alive, dead := ecs.NewEntity(), ecs.NewEntity()
	ecs.Enemies[alive] = &component.Enemy{State: component.EnemyAlive}
	ecs.Enemies[dead] = &component.Enemy{State: component.EnemyEscaped}

	if _, ok := ecs.AliveEnemy(alive); !ok {
		t.Error("alive enemy should resolve")
	}
	if _, ok := ecs.AliveEnemy(dead); ok {
		t.Error("escaped enemy must not resolve as a target")
	}
	if _, ok := ecs.AliveEnemy(999); ok {
		t.Error("unknown id must not resolve")
	}
	if n := ecs.AliveEnemyCount(); n != 1 {
		t.Errorf("expected 1 alive enemy, got %d", n)
	}
}

func TestIDsAreSorted(t *testing.T) {
	ecs := NewECS()
	for i := 0; i < 20; i++ {
		ecs.Structures[ecs.NewEntity()] = &component.Structure{}
	}
	ids := ecs.StructureIDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("ids not ascending at %d: %v", i, ids)
		}
	}
}

func TestSortedIDsOrdersAnyStore(t *testing.T) {
	ecs := NewECS()
	for i := 0; i < 12; i++ {
		ecs.Texts[ecs.NewEntity()] = &component.Text{}
	}
	ids := SortedIDs(ecs.Texts)
	if len(ids) != 12 {
		t.Fatalf("expected 12 ids, got %d", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("ids not ascending at %d: %v", i, ids)
		}
	}
	if got := SortedIDs(map[types.EntityID]int{}); len(got) != 0 {
		t.Errorf("empty store gave %v", got)
	}
}
