package registry

import (
	"testing"

	"github.com/Dibyajd/dj-codex/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterListCreate(t *testing.T) {
	Register("zz_test_b", func() Game { return stubGame{id: "zz_test_b"} })
	Register("zz_test_a", func() Game { return stubGame{id: "zz_test_a"} })

	if !Exists("zz_test_a") {
		t.Error("Exists should report a registered game")
	}
	if Exists("zz_missing") {
		t.Error("Exists should not report an unknown game")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "zz_test_a" && info.Title != "Stub zz_test_a" {
			t.Errorf("Title = %q, expected %q", info.Title, "Stub zz_test_a")
		}
	}
	posA, posB := -1, -1
	for i, id := range ids {
		switch id {
		case "zz_test_a":
			posA = i
		case "zz_test_b":
			posB = i
		}
	}
	if posA < 0 || posB < 0 || posA > posB {
		t.Errorf("List() should be sorted by ID, got %v", ids)
	}

	g, err := Create("zz_test_b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_test_b" {
		t.Errorf("Create() returned %q", g.ID())
	}

	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create() should fail for an unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_test_dup", func() Game { return stubGame{id: "zz_test_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_test_dup", func() Game { return stubGame{id: "zz_test_dup"} })
}
