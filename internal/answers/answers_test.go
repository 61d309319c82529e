package answers

import (
	"slices"
	"testing"
)

func TestBuilderFreeze(t *testing.T) {
	b := NewBuilder()
	b.Put("project_name", "demo")
	b.Put("with_docker", true)

	set := b.Freeze()

	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", set.Len())
	}
	if set.String("project_name") != "demo" {
		t.Errorf("String(project_name) = %q", set.String("project_name"))
	}
	if !set.Bool("with_docker") {
		t.Error("Bool(with_docker) = false, want true")
	}
	if got := set.Names(); !slices.Equal(got, []string{"project_name", "with_docker"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestPutAfterFreezePanics(t *testing.T) {
	b := NewBuilder()
	b.Freeze()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on Put after Freeze")
		}
	}()
	b.Put("late", "value")
}

func TestMapIsACopy(t *testing.T) {
	set := FromMap(map[string]any{"a": "1"})

	m := set.Map()
	m["a"] = "changed"
	m["b"] = "new"

	if set.String("a") != "1" || set.Has("b") {
		t.Error("mutating Map() result changed the Set")
	}
}

func TestMissingValues(t *testing.T) {
	set := FromMap(nil)

	if set.String("x") != "" || set.Bool("x") {
		t.Error("missing values should be zero")
	}
	if _, ok := set.Lookup("x"); ok {
		t.Error("Lookup(x) should report missing")
	}
}

func TestEnv(t *testing.T) {
	set := FromMap(map[string]any{"project_name": "demo", "with_docker": false})

	got := set.Env("INITT_VAR_")
	want := []string{"INITT_VAR_project_name=demo", "INITT_VAR_with_docker=false"}
	if !slices.Equal(got, want) {
		t.Errorf("Env() = %v, want %v", got, want)
	}
}
