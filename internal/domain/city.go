package domain

import "sort"

// City is an entry in the Trip Service's city catalog.
type City struct {
	ID        int64
	CityName  string // romanized name, used as the selection value
	KoName    string // display name
	KoCountry string
}

// DistinctCountries returns the sorted set of countries present in the
// catalog, skipping blank entries.
func DistinctCountries(cities []City) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range cities {
		if c.KoCountry == "" || seen[c.KoCountry] {
			continue
		}
		seen[c.KoCountry] = true
		out = append(out, c.KoCountry)
	}
	sort.Strings(out)
	return out
}

// CitiesInCountry filters the catalog down to one country, preserving
// catalog order.
func CitiesInCountry(cities []City, country string) []City {
	var out []City
	for _, c := range cities {
		if c.KoCountry == country {
			out = append(out, c)
		}
	}
	return out
}

// FindCityByName looks a city up by its romanized name.
func FindCityByName(cities []City, name string) (City, bool) {
	for _, c := range cities {
		if c.CityName == name {
			return c, true
		}
	}
	return City{}, false
}
