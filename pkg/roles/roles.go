// Package roles maps MARC relator predicates to contributor role names.
package roles

import (
	"slices"
	"strings"
)

// Namespace of MARC relator codes used as predicates in book graphs.
const Namespace = "http://id.loc.gov/vocabulary/relators/"

const (
	// Author is the role of dcterms:creator agents.
	Author = "Author"

	// Unrecognized is assigned to relator codes missing from the table.
	Unrecognized = "Unrecognized"
)

var codes = map[string]string{
	"ann": "Annotator",
	"cmm": "Commentator",
	"cmp": "Composer",
	"com": "Compiler",
	"ctb": "Contributor",
	"edt": "Editor",
	"ill": "Illustrator",
	"oth": "Other",
	"pht": "Photographer",
	"trl": "Translator",
}

// Classify returns the role name of a predicate. The second value is
// false when the predicate is outside of the relator namespace, such
// predicates do not describe contributions.
func Classify(predicate string) (string, bool) {
	code, ok := strings.CutPrefix(predicate, Namespace)
	if !ok {
		return "", false
	}
	if role, ok := codes[code]; ok {
		return role, true
	}
	return Unrecognized, true
}

// All returns every role name a contribution can have, sorted.
func All() []string {
	res := make([]string, 0, len(codes)+2)
	res = append(res, Author, Unrecognized)
	for _, v := range codes {
		res = append(res, v)
	}
	slices.Sort(res)
	return res
}
