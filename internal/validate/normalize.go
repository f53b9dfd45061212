// internal/validate/normalize.go
package validate

import "strings"

var spaceCollapser = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(spaceCollapser.Replace(s)), " ")
}

// NormalizeEmail trims and lower-cases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeUsername trims, lower-cases and strips inner whitespace.
func NormalizeUsername(username string) string {
	return strings.Join(strings.Fields(strings.ToLower(username)), "")
}

// NormalizeAlias trims and lower-cases a wallet alias before lookup.
func NormalizeAlias(alias string) string {
	return strings.ToLower(strings.TrimSpace(alias))
}

// NormalizePersonName collapses whitespace and title-cases each word.
func NormalizePersonName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// NormalizeStreet collapses redundant whitespace.
func NormalizeStreet(street string) string {
	return collapseSpaces(street)
}
