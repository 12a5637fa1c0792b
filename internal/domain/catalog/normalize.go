package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SearchKey normaliza un nombre de insumo para búsqueda y unicidad:
// sin acentos, minúsculas y con espacios simples ("Óleo  Mineral" → "oleo mineral").
func SearchKey(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, name)
	if err != nil {
		out = name
	}
	out = cases.Fold().String(out)
	return strings.Join(strings.Fields(out), " ")
}

// DisplayName limpia espacios y capitaliza cada palabra respetando acentos.
func DisplayName(name string) string {
	clean := strings.Join(strings.Fields(name), " ")
	return cases.Title(language.BrazilianPortuguese).String(clean)
}

// categories aceptadas para productos; cualquier otra se rechaza en lugar de caer en OUTROS.
var categories = map[string]struct{}{
	"HERBICIDA": {}, "INSETICIDA": {}, "FUNGICIDA": {}, "ADJUVANTE": {},
	"FERTILIZANTE": {}, "SEMENTE": {}, "OUTROS": {},
}

// NormalizeCategory devuelve la categoría en mayúsculas y si es conocida.
func NormalizeCategory(c string) (string, bool) {
	up := strings.ToUpper(SearchKey(c))
	_, ok := categories[up]
	return up, ok
}
