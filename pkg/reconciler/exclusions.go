package reconciler

// aggregates lists the usage-dataset pseudo-codes that stand for groupings
// of countries rather than a single country.
var aggregates = map[string]string{
	"OWID_WRL":  "World",
	"OWID_AFR":  "Africa",
	"OWID_ASI":  "Asia",
	"OWID_EUR":  "Europe",
	"OWID_EU27": "European Union (27)",
	"OWID_NAM":  "North America",
	"OWID_SAM":  "South America",
	"OWID_OCE":  "Oceania",
	"OWID_HIC":  "High-income countries",
	"OWID_UMC":  "Upper-middle-income countries",
	"OWID_LMC":  "Lower-middle-income countries",
	"OWID_LIC":  "Low-income countries",
	"OWID_USS":  "USSR",
}

// IsAggregate reports whether code is a known aggregate pseudo-code.
// The comparison is case-insensitive.
func IsAggregate(code string) bool {
	_, ok := aggregates[normalizeCode(code)]
	return ok
}

// Aggregates returns the excluded pseudo-codes mapped to their names.
func Aggregates() map[string]string {
	out := make(map[string]string, len(aggregates))
	for code, name := range aggregates {
		out[code] = name
	}
	return out
}
