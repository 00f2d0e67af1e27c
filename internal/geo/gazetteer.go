package geo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Coord is a WGS84 centroid.
type Coord struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// LocalityEntry is a settlement centroid inside a subregion.
type LocalityEntry struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// SubregionEntry is an LGA centroid with its known settlements.
type SubregionEntry struct {
	Lat        float64                  `yaml:"lat"`
	Lon        float64                  `yaml:"lon"`
	Localities map[string]LocalityEntry `yaml:"localities"`
}

// RegionEntry is a state centroid with its known LGAs.
type RegionEntry struct {
	Lat        float64                   `yaml:"lat"`
	Lon        float64                   `yaml:"lon"`
	Subregions map[string]SubregionEntry `yaml:"subregions"`
}

// Gazetteer is the static reference table for the three-tier cascade. Keys
// are normalized (lowercase, no administrative suffixes).
type Gazetteer struct {
	Regions map[string]RegionEntry `yaml:"regions"`
	Aliases map[string]string      `yaml:"aliases"`
}

// LoadGazetteerFile reads a YAML extension file and merges it over the
// built-in tables. Entries in the file win on key collision.
func LoadGazetteerFile(path string) (*Gazetteer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gazetteer %s: %w", path, err)
	}

	var extension Gazetteer
	if err := yaml.Unmarshal(raw, &extension); err != nil {
		return nil, fmt.Errorf("parse gazetteer %s: %w", path, err)
	}

	base := BuiltinGazetteer()
	base.Merge(&extension)
	return base, nil
}

// Merge overlays another gazetteer onto this one.
func (g *Gazetteer) Merge(other *Gazetteer) {
	if other == nil {
		return
	}
	for name, region := range other.Regions {
		g.Regions[name] = region
	}
	for alias, target := range other.Aliases {
		g.Aliases[alias] = target
	}
}

// PlaceNames returns every region, subregion, locality, and alias name known
// to the gazetteer; the relevance filter uses this as its place vocabulary.
func (g *Gazetteer) PlaceNames() []string {
	var names []string
	for regionName, region := range g.Regions {
		names = append(names, regionName)
		for subName, sub := range region.Subregions {
			names = append(names, subName)
			for locName := range sub.Localities {
				names = append(names, locName)
			}
		}
	}
	for alias := range g.Aliases {
		names = append(names, alias)
	}
	return names
}

// BuiltinGazetteer returns the compiled-in Nigerian tables: state centroids,
// selected LGAs for the most conflict-affected states, and common aliases
// including the federal-capital set.
func BuiltinGazetteer() *Gazetteer {
	return &Gazetteer{
		Regions: map[string]RegionEntry{
			"borno": {Lat: 11.8333, Lon: 13.1500, Subregions: map[string]SubregionEntry{
				"maiduguri": {Lat: 11.8464, Lon: 13.1603, Localities: map[string]LocalityEntry{
					"gwange":  {Lat: 11.8333, Lon: 13.1667},
					"customs": {Lat: 11.8583, Lon: 13.1500},
					"jiddari": {Lat: 11.8245, Lon: 13.1436},
				}},
				"konduga": {Lat: 11.6533, Lon: 13.4181, Localities: map[string]LocalityEntry{
					"dalori": {Lat: 11.7833, Lon: 13.2500},
					"auno":   {Lat: 11.8500, Lon: 12.9833},
				}},
				"gwoza":  {Lat: 11.0861, Lon: 13.6919},
				"chibok": {Lat: 10.8667, Lon: 12.8500},
				"bama":   {Lat: 11.5214, Lon: 13.6886},
			}},
			"zamfara": {Lat: 12.1700, Lon: 6.2400, Subregions: map[string]SubregionEntry{
				"gusau":    {Lat: 12.1628, Lon: 6.6614},
				"anka":     {Lat: 12.1108, Lon: 5.9294},
				"maradun":  {Lat: 12.5833, Lon: 6.0833},
				"shinkafi": {Lat: 13.0667, Lon: 6.5167},
			}},
			"kaduna": {Lat: 10.3333, Lon: 7.7500, Subregions: map[string]SubregionEntry{
				"kaduna north": {Lat: 10.5667, Lon: 7.4333},
				"kaduna south": {Lat: 10.4833, Lon: 7.4167},
				"birnin gwari": {Lat: 10.6500, Lon: 6.5500},
				"kajuru":       {Lat: 10.3231, Lon: 7.6842},
				"zangon kataf": {Lat: 9.8167, Lon: 8.2833},
			}},
			"katsina": {Lat: 12.3800, Lon: 7.6300, Subregions: map[string]SubregionEntry{
				"jibia":   {Lat: 13.0833, Lon: 7.2167},
				"batsari": {Lat: 12.9667, Lon: 7.2667},
				"kankara": {Lat: 11.9333, Lon: 7.4167},
			}},
			"plateau": {Lat: 9.1667, Lon: 9.7500, Subregions: map[string]SubregionEntry{
				"jos north":    {Lat: 9.9333, Lon: 8.8833},
				"jos south":    {Lat: 9.8167, Lon: 8.8667},
				"barkin ladi":  {Lat: 9.5333, Lon: 8.9000},
				"bokkos":       {Lat: 9.3000, Lon: 9.0000},
				"mangu":        {Lat: 9.5167, Lon: 9.1000},
			}},
			"benue": {Lat: 7.3500, Lon: 8.7500, Subregions: map[string]SubregionEntry{
				"makurdi": {Lat: 7.7322, Lon: 8.5391},
				"guma":    {Lat: 7.9167, Lon: 8.7500},
				"logo":    {Lat: 7.5833, Lon: 9.0500},
				"agatu":   {Lat: 7.9000, Lon: 7.9500},
			}},
			"niger": {Lat: 9.9300, Lon: 5.5900, Subregions: map[string]SubregionEntry{
				"shiroro": {Lat: 9.9667, Lon: 6.8333},
				"rafi":    {Lat: 10.3667, Lon: 6.5667},
				"munya":   {Lat: 10.1667, Lon: 6.5500},
			}},
			"yobe": {Lat: 12.0000, Lon: 11.5000, Subregions: map[string]SubregionEntry{
				"damaturu": {Lat: 11.7469, Lon: 11.9608},
				"geidam":   {Lat: 12.8944, Lon: 11.9267},
				"gujba":    {Lat: 11.4989, Lon: 11.9281},
			}},
			"sokoto": {Lat: 13.0800, Lon: 5.2400, Subregions: map[string]SubregionEntry{
				"sabon birni": {Lat: 13.5667, Lon: 6.2500},
				"isa":         {Lat: 13.2333, Lon: 6.4000},
				"rabah":       {Lat: 13.1000, Lon: 5.5167},
			}},
			"imo": {Lat: 5.4833, Lon: 7.0333, Subregions: map[string]SubregionEntry{
				"owerri municipal": {Lat: 5.4836, Lon: 7.0333},
				"orlu":             {Lat: 5.7833, Lon: 7.0333},
				"okigwe":           {Lat: 5.8333, Lon: 7.3500},
			}},
			"rivers": {Lat: 4.7500, Lon: 6.8333, Subregions: map[string]SubregionEntry{
				"port harcourt": {Lat: 4.7774, Lon: 7.0134},
				"emohua":        {Lat: 4.8833, Lon: 6.8500},
			}},
			"federal capital territory": {Lat: 8.8333, Lon: 7.1667, Subregions: map[string]SubregionEntry{
				"abuja municipal": {Lat: 9.0765, Lon: 7.3986},
				"kuje":            {Lat: 8.8833, Lon: 7.2333},
				"bwari":           {Lat: 9.2833, Lon: 7.3833},
			}},
			"lagos": {Lat: 6.5244, Lon: 3.3792, Subregions: map[string]SubregionEntry{
				"ikeja":        {Lat: 6.6018, Lon: 3.3515},
				"lagos island": {Lat: 6.4549, Lon: 3.4246},
			}},
		},
		Aliases: map[string]string{
			"abuja":          "federal capital territory",
			"fct":            "federal capital territory",
			"f.c.t":          "federal capital territory",
			"maiduguri city": "maiduguri",
			"jos":            "jos north",
			"port-harcourt":  "port harcourt",
			"owerri":         "owerri municipal",
			"phc":            "port harcourt",
		},
	}
}
