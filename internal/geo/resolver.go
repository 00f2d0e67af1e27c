// Package geo resolves (region, subregion, locality) triples to coordinates
// through a three-tier precision cascade over a static gazetteer.
package geo

import (
	"strings"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
)

// administrative suffixes stripped during normalization.
var suffixes = []string{" state", " lga", " local government area", " local government"}

// Resolver matches normalized location triples against gazetteer tables.
type Resolver struct {
	gazetteer *Gazetteer
}

// NewResolver wires a gazetteer; nil falls back to the built-in tables.
func NewResolver(gazetteer *Gazetteer) *Resolver {
	if gazetteer == nil {
		gazetteer = BuiltinGazetteer()
	}
	return &Resolver{gazetteer: gazetteer}
}

// Normalize lowercases and trims a place name, strips administrative
// suffixes, and rewrites known aliases.
func (r *Resolver) Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == domain.Unknown {
		return ""
	}
	for _, suffix := range suffixes {
		name = strings.TrimSuffix(name, suffix)
	}
	name = strings.TrimSpace(name)
	if target, ok := r.gazetteer.Aliases[name]; ok {
		return target
	}
	return name
}

// Resolve walks the cascade from most to least precise: locality within the
// named subregion, subregion centroid within the region, region centroid.
// A completely unrecognized region yields nil, never a fabricated default.
func (r *Resolver) Resolve(region, subregion, locality string) *domain.GeocodeResult {
	regionName := r.Normalize(region)
	subName := r.Normalize(subregion)
	locName := r.Normalize(locality)

	regionName, regionEntry, ok := r.lookupRegion(regionName, subName)
	if !ok {
		return nil
	}

	matched := domain.Location{Region: regionName, Subregion: domain.Unknown, Locality: domain.Unknown}

	if subEntry, ok := regionEntry.Subregions[subName]; ok {
		matched.Subregion = subName
		if locEntry, ok := subEntry.Localities[locName]; ok && locName != "" {
			matched.Locality = locName
			return &domain.GeocodeResult{
				Latitude:  locEntry.Lat,
				Longitude: locEntry.Lon,
				Precision: domain.PrecisionLocality,
				Matched:   matched,
			}
		}
		return &domain.GeocodeResult{
			Latitude:  subEntry.Lat,
			Longitude: subEntry.Lon,
			Precision: domain.PrecisionSubregion,
			Matched:   matched,
		}
	}

	return &domain.GeocodeResult{
		Latitude:  regionEntry.Lat,
		Longitude: regionEntry.Lon,
		Precision: domain.PrecisionRegion,
		Matched:   matched,
	}
}

// lookupRegion finds the region entry, also accepting a subregion-only triple
// whose subregion identifies its parent state (common when the extraction
// service reports a well-known city without its state).
func (r *Resolver) lookupRegion(regionName, subName string) (string, RegionEntry, bool) {
	if entry, ok := r.gazetteer.Regions[regionName]; ok {
		return regionName, entry, true
	}
	if subName == "" {
		return "", RegionEntry{}, false
	}
	for name, entry := range r.gazetteer.Regions {
		if _, ok := entry.Subregions[subName]; ok {
			return name, entry, true
		}
	}
	return "", RegionEntry{}, false
}

// PlaceNames exposes the gazetteer vocabulary for the relevance filter.
func (r *Resolver) PlaceNames() []string {
	return r.gazetteer.PlaceNames()
}
