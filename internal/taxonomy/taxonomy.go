// Package taxonomy maps free-text incident and actor descriptions onto the
// closed domain taxonomies. Values already belonging to a taxonomy pass
// through untouched; everything else goes through ordered keyword rules with
// a mandatory default, so no event ever leaves this package with free text.
package taxonomy

import (
	"strings"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
)

// incidentRule maps any of its keywords to an archetype. Rules are evaluated
// top to bottom; the first rule with a keyword hit wins.
type incidentRule struct {
	archetype domain.IncidentType
	keywords  []string
}

var incidentRules = []incidentRule{
	{domain.IncidentTerrorism, []string{"boko haram", "iswap", "insurgen", "terroris", "suicide bomb", "improvised explosive", "jihadist"}},
	{domain.IncidentKidnapping, []string{"kidnap", "abduct", "ransom", "hostage"}},
	{domain.IncidentMilitaryOperation, []string{"military operation", "air strike", "airstrike", "troops", "raid", "offensive", "bombardment"}},
	{domain.IncidentCommunalClash, []string{"communal", "herder", "herdsmen", "farmer", "ethnic clash", "reprisal"}},
	{domain.IncidentCultClash, []string{"cult", "rival gang", "gang war"}},
	{domain.IncidentCivilUnrest, []string{"protest", "riot", "demonstrat", "unrest", "curfew"}},
	{domain.IncidentArmedAttack, []string{"gunmen", "bandit", "attack", "shoot", "shot", "ambush", "killed", "massacre"}},
}

type actorRule struct {
	archetype domain.ActorType
	keywords  []string
}

var actorRules = []actorRule{
	{domain.ActorBokoHaram, []string{"boko haram", "jas"}},
	{domain.ActorISWAP, []string{"iswap", "islamic state west africa"}},
	{domain.ActorMilitary, []string{"military", "army", "soldier", "troops", "air force", "navy"}},
	{domain.ActorPolice, []string{"police", "nscdc", "security operative"}},
	{domain.ActorBandits, []string{"bandit"}},
	{domain.ActorHerdsmen, []string{"herdsmen", "herder", "fulani militia"}},
	{domain.ActorCultists, []string{"cultist", "cult group"}},
	{domain.ActorProtesters, []string{"protester", "demonstrator"}},
	{domain.ActorUnknownGunmen, []string{"unknown gunmen", "gunmen", "unidentified attacker"}},
	{domain.ActorCivilians, []string{"villager", "resident", "civilian", "vigilante"}},
}

var incidentMembers = map[domain.IncidentType]bool{
	domain.IncidentArmedAttack:       true,
	domain.IncidentTerrorism:         true,
	domain.IncidentKidnapping:        true,
	domain.IncidentCommunalClash:     true,
	domain.IncidentMilitaryOperation: true,
	domain.IncidentCivilUnrest:       true,
	domain.IncidentCultClash:         true,
	domain.IncidentOther:             true,
}

var actorMembers = map[domain.ActorType]bool{
	domain.ActorMilitary:      true,
	domain.ActorPolice:        true,
	domain.ActorBokoHaram:     true,
	domain.ActorISWAP:         true,
	domain.ActorBandits:       true,
	domain.ActorHerdsmen:      true,
	domain.ActorCultists:      true,
	domain.ActorUnknownGunmen: true,
	domain.ActorProtesters:    true,
	domain.ActorCivilians:     true,
	domain.ActorUnknown:       true,
}

// MapIncidentType returns the taxonomy member for a service-provided value.
// A value that already names a member is used as-is; otherwise the value and
// the source text are scanned against the keyword rules.
func MapIncidentType(value, sourceText string) domain.IncidentType {
	candidate := domain.IncidentType(normalize(value))
	if incidentMembers[candidate] {
		return candidate
	}

	haystack := strings.ToLower(value + " " + sourceText)
	for _, rule := range incidentRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(haystack, keyword) {
				return rule.archetype
			}
		}
	}
	return domain.IncidentOther
}

// MapActor returns the actor taxonomy member for a service-provided value,
// falling back to keyword rules and finally the unknown actor.
func MapActor(value, sourceText string) domain.ActorType {
	candidate := domain.ActorType(normalize(value))
	if actorMembers[candidate] {
		return candidate
	}

	haystack := strings.ToLower(value + " " + sourceText)
	for _, rule := range actorRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(haystack, keyword) {
				return rule.archetype
			}
		}
	}
	return domain.ActorUnknown
}

// MapSecondaryActor behaves like MapActor but preserves absence: an empty or
// unknown value stays empty rather than forcing a default member.
func MapSecondaryActor(value, sourceText string) domain.ActorType {
	if normalize(value) == "" || normalize(value) == domain.Unknown {
		return ""
	}
	return MapActor(value, sourceText)
}

func normalize(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "_")
}
