package model

import "testing"

func TestDefaultItemDefinitionKnownType(t *testing.T) {
	def, err := DefaultItemDefinition("Wall")
	if err != nil {
		t.Fatalf("DefaultItemDefinition(Wall) error: %v", err)
	}
	if def.Size.Y != 3 {
		t.Errorf("Wall default height = %v, want 3", def.Size.Y)
	}
}

func TestDefaultItemDefinitionStripsInstanceSuffix(t *testing.T) {
	def, err := DefaultItemDefinition("Wall 12")
	if err != nil {
		t.Fatalf("DefaultItemDefinition(Wall 12) error: %v", err)
	}
	if def.Size.X != 1 {
		t.Errorf("Wall default length = %v, want 1", def.Size.X)
	}
}

func TestDefaultItemDefinitionUnknownType(t *testing.T) {
	if _, err := DefaultItemDefinition("FlyingSaucer"); err == nil {
		t.Fatal("expected error for unknown item type")
	}
}

func TestDefaultSizeAndColor(t *testing.T) {
	size, err := DefaultSize("Agent")
	if err != nil {
		t.Fatalf("DefaultSize(Agent) error: %v", err)
	}
	if size != (Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Agent default size = %+v", size)
	}

	color, err := DefaultColor("GoodGoal")
	if err != nil {
		t.Fatalf("DefaultColor(GoodGoal) error: %v", err)
	}
	if color != (RGB{R: 0, G: 255, B: 0}) {
		t.Errorf("GoodGoal default color = %+v", color)
	}
}

func TestKnownItemTypesIncludesBlocks(t *testing.T) {
	types := KnownItemTypes()

	found := map[string]bool{}
	for _, name := range types {
		found[name] = true
	}
	for _, want := range []string{"Wall", "LBlock", "UBlock", "JBlock", "Agent"} {
		if !found[want] {
			t.Errorf("KnownItemTypes missing %q", want)
		}
	}
}

func TestTypeToken(t *testing.T) {
	if got := TypeToken("Wall 3"); got != "Wall" {
		t.Errorf("TypeToken(Wall 3) = %q", got)
	}
	if got := TypeToken("Ramp"); got != "Ramp" {
		t.Errorf("TypeToken(Ramp) = %q", got)
	}
}

func TestInstanceName(t *testing.T) {
	if got := InstanceName("Wall", 2); got != "Wall 2" {
		t.Errorf("InstanceName = %q", got)
	}
}
