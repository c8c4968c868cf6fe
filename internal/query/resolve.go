package query

import (
	"strings"

	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
)

// termSynonyms maps trigger terms in a question to the name fragments that
// identify matching columns. Consulted only when direct name matching finds
// nothing.
var termSynonyms = []struct {
	term     string
	synonyms []string
}{
	{"age", []string{"age"}},
	{"income", []string{"income", "salary", "wage"}},
	{"sales", []string{"sales", "revenue"}},
	{"price", []string{"price", "cost", "amount"}},
	{"gender", []string{"gender", "sex"}},
	{"region", []string{"region", "location", "area"}},
	{"department", []string{"department", "dept"}},
	{"employee", []string{"employee", "staff", "worker"}},
	{"customer", []string{"customer", "client"}},
	{"date", []string{"date", "time"}},
	{"status", []string{"status", "state"}},
}

// Resolve maps a question to the set of dataset columns it references.
// The result is deduplicated; callers must not rely on order beyond treating
// it as a set (executors tie-break by dataset column order, which is what
// this happens to return).
func Resolve(question string, ds *dataset.Dataset) []*dataset.Column {
	q := strings.ToLower(question)

	var found []*dataset.Column
	for _, c := range ds.Columns() {
		if columnMentioned(q, c) {
			found = append(found, c)
		}
	}
	if len(found) > 0 {
		return found
	}
	return resolveBySynonym(q, ds)
}

// columnMentioned is plain substring containment, including per-token: an
// "age" column matches inside "average". That over-match is a long-standing
// behavioral contract, not a bug to fix here.
func columnMentioned(q string, c *dataset.Column) bool {
	spaced := strings.ReplaceAll(c.Name, "_", " ")
	if strings.Contains(q, spaced) || strings.Contains(q, c.Name) {
		return true
	}
	if strings.Contains(q, strings.ToLower(c.Original)) {
		return true
	}
	for _, tok := range strings.Split(c.Name, "_") {
		if tok != "" && strings.Contains(q, tok) {
			return true
		}
	}
	return false
}

func resolveBySynonym(q string, ds *dataset.Dataset) []*dataset.Column {
	matched := make(map[string]struct{})
	var found []*dataset.Column
	for _, entry := range termSynonyms {
		if !strings.Contains(q, entry.term) {
			continue
		}
		for _, c := range ds.Columns() {
			if _, dup := matched[c.Name]; dup {
				continue
			}
			name := c.Name
			orig := strings.ToLower(c.Original)
			for _, syn := range entry.synonyms {
				if strings.Contains(name, syn) || strings.Contains(orig, syn) {
					matched[c.Name] = struct{}{}
					found = append(found, c)
					break
				}
			}
		}
	}
	return found
}
