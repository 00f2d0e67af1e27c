package geo

import (
	"testing"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
)

func TestResolveCascade(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil)

	locality := r.Resolve("Borno", "Konduga", "Dalori")
	if locality == nil || locality.Precision != domain.PrecisionLocality {
		t.Fatalf("expected locality precision, got %+v", locality)
	}

	sub := r.Resolve("Borno", "Konduga", "unknown")
	if sub == nil || sub.Precision != domain.PrecisionSubregion {
		t.Fatalf("expected subregion precision, got %+v", sub)
	}

	region := r.Resolve("Borno", "unknown", "unknown")
	if region == nil || region.Precision != domain.PrecisionRegion {
		t.Fatalf("expected region precision, got %+v", region)
	}

	if got := r.Resolve("Atlantis", "unknown", "unknown"); got != nil {
		t.Fatalf("unrecognized region must yield no result, got %+v", got)
	}
}

func TestPrecisionMonotonicity(t *testing.T) {
	t.Parallel()

	// A triple with a valid locality must never resolve coarser than
	// locality, even though subregion and region would also match.
	r := NewResolver(nil)
	result := r.Resolve("Borno", "Maiduguri", "Gwange")
	if result == nil {
		t.Fatal("expected a match")
	}
	if result.Precision != domain.PrecisionLocality {
		t.Fatalf("expected locality tier, got %s", result.Precision)
	}
}

func TestNormalizeAliases(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil)

	if got := r.Normalize("Abuja"); got != "federal capital territory" {
		t.Fatalf("federal-capital alias failed: %q", got)
	}
	if got := r.Normalize("FCT"); got != "federal capital territory" {
		t.Fatalf("FCT alias failed: %q", got)
	}
	if got := r.Normalize("Borno State"); got != "borno" {
		t.Fatalf("state suffix should be stripped: %q", got)
	}
	if got := r.Normalize("  Kajuru LGA "); got != "kajuru" {
		t.Fatalf("lga suffix should be stripped: %q", got)
	}
}

func TestResolveViaAlias(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil)
	result := r.Resolve("Abuja", "unknown", "unknown")
	if result == nil {
		t.Fatal("alias region should resolve")
	}
	if result.Matched.Region != "federal capital territory" {
		t.Fatalf("matched region should be the canonical name, got %q", result.Matched.Region)
	}
}

func TestResolveSubregionWithoutRegion(t *testing.T) {
	t.Parallel()

	// The service often reports a well-known city without its state.
	r := NewResolver(nil)
	result := r.Resolve("unknown", "Maiduguri", "unknown")
	if result == nil || result.Precision != domain.PrecisionSubregion {
		t.Fatalf("expected subregion match via parent lookup, got %+v", result)
	}
	if result.Matched.Region != "borno" {
		t.Fatalf("parent region should backfill, got %q", result.Matched.Region)
	}
}

func TestResolveDeterministic(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil)
	first := r.Resolve("Plateau", "Bokkos", "unknown")
	for i := 0; i < 20; i++ {
		again := r.Resolve("Plateau", "Bokkos", "unknown")
		if *again != *first {
			t.Fatalf("resolution changed across calls: %+v vs %+v", first, again)
		}
	}
}

func TestGazetteerMerge(t *testing.T) {
	t.Parallel()

	base := BuiltinGazetteer()
	base.Merge(&Gazetteer{
		Regions: map[string]RegionEntry{
			"example region": {Lat: 1, Lon: 2, Subregions: map[string]SubregionEntry{
				"example subregion": {Lat: 3, Lon: 4},
			}},
		},
		Aliases: map[string]string{"ex": "example region"},
	})

	r := NewResolver(base)
	if got := r.Resolve("Example Region", "Example Subregion", "unknown"); got == nil || got.Precision != domain.PrecisionSubregion {
		t.Fatalf("merged entries should resolve, got %+v", got)
	}
	if got := r.Resolve("ex", "unknown", "unknown"); got == nil {
		t.Fatal("merged alias should resolve")
	}
}
