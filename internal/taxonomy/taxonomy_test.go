package taxonomy

import (
	"testing"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
)

func TestMapIncidentTypePassthrough(t *testing.T) {
	t.Parallel()

	if got := MapIncidentType("kidnapping", ""); got != domain.IncidentKidnapping {
		t.Fatalf("taxonomy member should pass through, got %s", got)
	}
	if got := MapIncidentType("Armed Attack", ""); got != domain.IncidentArmedAttack {
		t.Fatalf("member with spacing/case variants should pass through, got %s", got)
	}
}

func TestMapIncidentTypeKeywords(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value string
		text  string
		want  domain.IncidentType
	}{
		{"abduction of schoolchildren", "", domain.IncidentKidnapping},
		{"", "Boko Haram insurgents stormed the village", domain.IncidentTerrorism},
		{"", "troops launched an air strike on camps", domain.IncidentMilitaryOperation},
		{"", "herdsmen and farmers clashed overnight", domain.IncidentCommunalClash},
		{"", "gunmen shot three residents", domain.IncidentArmedAttack},
		{"", "protest turned violent in the capital", domain.IncidentCivilUnrest},
		{"something else entirely", "quarterly budget review", domain.IncidentOther},
	}

	for _, tc := range cases {
		if got := MapIncidentType(tc.value, tc.text); got != tc.want {
			t.Errorf("MapIncidentType(%q, %q) = %s, want %s", tc.value, tc.text, got, tc.want)
		}
	}
}

func TestMapIncidentTypeFirstMatchWins(t *testing.T) {
	t.Parallel()

	// Text matching both the terrorism and armed-attack rules resolves to the
	// earlier rule in declaration order.
	text := "Boko Haram gunmen attacked the town"
	if got := MapIncidentType("", text); got != domain.IncidentTerrorism {
		t.Fatalf("expected first rule to win, got %s", got)
	}
}

func TestMapActor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value string
		text  string
		want  domain.ActorType
	}{
		{"bandits", "", domain.ActorBandits},
		{"", "soldiers repelled the assault", domain.ActorMilitary},
		{"", "unknown gunmen fled the scene", domain.ActorUnknownGunmen},
		{"", "nothing actor-like here", domain.ActorUnknown},
	}

	for _, tc := range cases {
		if got := MapActor(tc.value, tc.text); got != tc.want {
			t.Errorf("MapActor(%q, %q) = %s, want %s", tc.value, tc.text, got, tc.want)
		}
	}
}

func TestMapSecondaryActorPreservesAbsence(t *testing.T) {
	t.Parallel()

	if got := MapSecondaryActor("", "soldiers everywhere"); got != "" {
		t.Fatalf("empty secondary actor should stay empty, got %q", got)
	}
	if got := MapSecondaryActor("unknown", ""); got != "" {
		t.Fatalf("unknown secondary actor should stay empty, got %q", got)
	}
	if got := MapSecondaryActor("police", ""); got != domain.ActorPolice {
		t.Fatalf("named secondary actor should map, got %q", got)
	}
}
