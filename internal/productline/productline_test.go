package productline

import "testing"

func TestGet(t *testing.T) {
	if _, ok := Get("soy-curd"); !ok {
		t.Error("soy-curd should resolve")
	}
	if _, ok := Get("  Soy-Curd "); !ok {
		t.Error("line slugs should resolve case-insensitively with whitespace trimmed")
	}
	if _, ok := Get("moon-cheese"); ok {
		t.Error("unknown line should not resolve")
	}
}

func TestAll_StableOrderAndComplete(t *testing.T) {
	lines := All()
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6", len(lines))
	}
	if lines[0].Line != SoyCurd || lines[5].Line != FishCake {
		t.Errorf("unexpected ordering: first=%s last=%s", lines[0].Line, lines[5].Line)
	}
	for _, cfg := range lines {
		if cfg.ConversionRate <= 0 {
			t.Errorf("%s has non-positive conversion rate", cfg.Line)
		}
		if len(cfg.MatchTerms) == 0 {
			t.Errorf("%s has no ingredient match terms", cfg.Line)
		}
	}
}

func TestMatchesIngredient_SubstringFallback(t *testing.T) {
	cfg, _ := Get("soy-curd")

	if !cfg.MatchesIngredient(nil, "Fried Tofu") {
		t.Error("'Fried Tofu' should match soy-curd by substring")
	}
	if !cfg.MatchesIngredient(nil, "soy curd slices") {
		t.Error("'soy curd slices' should match soy-curd")
	}
	if cfg.MatchesIngredient(nil, "pork belly") {
		t.Error("'pork belly' should not match soy-curd")
	}
}

func TestMatchesIngredient_LinkedIDWins(t *testing.T) {
	cfg, _ := Get("soy-curd")
	cfg.IngredientIDs = []uint{42}

	id := uint(42)
	if !cfg.MatchesIngredient(&id, "house special no. 7") {
		t.Error("a linked ingredient id should match regardless of name")
	}
	other := uint(7)
	if cfg.MatchesIngredient(&other, "house special no. 7") {
		t.Error("an unlinked id with a non-matching name should not match")
	}
}
