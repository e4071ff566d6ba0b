package waterpolo

import (
	"fmt"
	"strings"
)

// AgeCategory is one Catalan water-polo age bracket. Key is matched as a
// substring of the upper-cased tournament name; Order sorts categories
// youngest first.
type AgeCategory struct {
	Key   string
	Order int
	Label string
}

// AgeCategories builds the age brackets for a season. Labels carry the
// birth-year span for that season, derived from the start year.
func AgeCategories(startYear int) []AgeCategory {
	y := startYear
	return []AgeCategory{
		{"BENJAMI", 1, fmt.Sprintf("9-10 anys (%d-%02d)", y-10, (y-9)%100)},
		{"ALEVI", 2, fmt.Sprintf("11-12 anys (%d-%02d)", y-12, (y-11)%100)},
		{"INFANTIL", 3, fmt.Sprintf("13-14 anys (%d-%02d)", y-14, (y-13)%100)},
		{"CADET", 4, fmt.Sprintf("15-16 anys (%d-%02d)", y-16, (y-15)%100)},
		{"JUVENIL", 5, fmt.Sprintf("17-18 anys (%d-%02d)", y-18, (y-17)%100)},
		{"ABSOLUTA", 6, "+18 anys"},
		{"MASTER", 7, "+30 anys"},
	}
}

// CategoryAgeInfo returns the sort order and age label for a tournament
// name, or (99, "") when no bracket matches.
func CategoryAgeInfo(tournamentName string, categories []AgeCategory) (int, string) {
	upper := strings.ToUpper(tournamentName)
	for _, c := range categories {
		if strings.Contains(upper, c.Key) {
			return c.Order, c.Label
		}
	}
	return 99, ""
}

// shortCategoryReplacements is ordered: longer patterns first so partial
// replacements never clobber them.
var shortCategoryReplacements = [][2]string{
	{"MASCULINA DE PROMOCIO", "Promo Masc."},
	{"MASCULINA DE PROMOCIÓ", "Promo Masc."},
	{"MASCULINA", "Masc."},
	{"MASCULI", "Masc."},
	{"MASCULÍ", "Masc."},
	{"FEMENINA", "Fem."},
	{"FEMENI", "Fem."},
	{"FEMENÍ", "Fem."},
	{"MIXTE", "Mixt"},
	{"MIXTA", "Mixt"},
	{"BENJAMINA", "Benjamí"},
	{"MASTER", "Màster"},
}

// ShortCategory abbreviates a competition name for display.
func ShortCategory(name string) string {
	name = strings.ReplaceAll(name, "LLIGA CATALANA ", "")
	name = strings.ReplaceAll(name, "COMPETICIO CATALANA ", "")
	name = strings.ReplaceAll(name, "COMPETICIÓ CATALANA ", "")
	for _, r := range shortCategoryReplacements {
		name = strings.ReplaceAll(name, r[0], r[1])
	}
	return strings.TrimSpace(name)
}
