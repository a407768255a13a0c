package main

import (
	"math/rand"
	"testing"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/ecs"
	"github.com/gonewx/typeabyss/pkg/encounter"
)

func newTypist(chance float64) *typist {
	return &typist{rng: rand.New(rand.NewSource(1)), ignored: make(map[ecs.EntityID]bool), chance: chance}
}

func TestTypistNextKey(t *testing.T) {
	tests := []struct {
		name string
		snap encounter.Snapshot
		want rune
	}{
		{
			name: "no enemies",
			snap: encounter.Snapshot{},
			want: 0,
		},
		{
			name: "continues active target",
			snap: encounter.Snapshot{
				ActiveTarget: 2,
				Enemies: []encounter.EnemyView{
					{ID: 1, Word: "axe", X: 300},
					{ID: 2, Word: "fire", Progress: "fi", X: 900},
				},
			},
			want: 'r',
		},
		{
			name: "picks enemy closest to player",
			snap: encounter.Snapshot{
				Enemies: []encounter.EnemyView{
					{ID: 1, Word: "fire", X: 900},
					{ID: 2, Word: "bow", X: 400},
				},
			},
			want: 'b',
		},
		{
			name: "skips dying and targeted",
			snap: encounter.Snapshot{
				Enemies: []encounter.EnemyView{
					{ID: 1, Word: "axe", X: 200, State: components.EnemyDying},
					{ID: 2, Word: "bow", X: 300, Targeted: true},
					{ID: 3, Word: "cut", X: 800},
				},
			},
			want: 'c',
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newTypist(0).nextKey(tt.snap); got != tt.want {
				t.Errorf("nextKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypistIgnoresEveryone(t *testing.T) {
	typ := newTypist(1)
	snap := encounter.Snapshot{Enemies: []encounter.EnemyView{{ID: 1, Word: "axe", X: 500}}}
	for i := 0; i < 3; i++ {
		if got := typ.nextKey(snap); got != 0 {
			t.Fatalf("nextKey() = %q, want no key when every enemy is ignored", got)
		}
	}
	if !typ.ignored[1] {
		t.Error("decision to ignore enemy 1 should be remembered")
	}
}
