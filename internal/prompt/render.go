// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Fields are the named values substituted into the structured template.
// Each field renders the {{token}} of the same name.
type Fields struct {
	FirmNameClause      string
	ContactName         string
	CompanyName         string
	SenderName          string
	NewsContext         string
	AdditionalContext   string
	RelationshipContext string
	RoleContext         string
	EmailStructure      string
	Examples            string
	ToneInstruction     string
	LengthInstruction   string
}

// Placeholders lists every token Render understands, in template order.
var Placeholders = []string{
	"firmNameClause",
	"contactName",
	"companyName",
	"senderName",
	"newsContext",
	"additionalContext",
	"relationshipContext",
	"roleContext",
	"emailStructure",
	"examples",
	"toneInstruction",
	"lengthInstruction",
}

func (f Fields) values() map[string]string {
	return map[string]string{
		"firmNameClause":      f.FirmNameClause,
		"contactName":         f.ContactName,
		"companyName":         f.CompanyName,
		"senderName":          f.SenderName,
		"newsContext":         f.NewsContext,
		"additionalContext":   f.AdditionalContext,
		"relationshipContext": f.RelationshipContext,
		"roleContext":         f.RoleContext,
		"emailStructure":      f.EmailStructure,
		"examples":            f.Examples,
		"toneInstruction":     f.ToneInstruction,
		"lengthInstruction":   f.LengthInstruction,
	}
}

var tokenPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Render replaces every {{token}} in template with its field value. It is
// a pure function and a single pass: values are inserted verbatim and never
// rescanned. A token with no matching field is an error, so a rendered
// prompt never carries a leftover placeholder from the template.
func Render(template string, f Fields) (string, error) {
	vals := f.values()

	var unknown []string
	seen := map[string]bool{}
	for _, m := range tokenPattern.FindAllStringSubmatch(template, -1) {
		name := m[1]
		if _, ok := vals[name]; !ok && !seen[name] {
			unknown = append(unknown, name)
			seen[name] = true
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return "", fmt.Errorf("template has unknown placeholders: %s", strings.Join(unknown, ", "))
	}

	pairs := make([]string, 0, 2*len(vals))
	for _, name := range Placeholders {
		pairs = append(pairs, "{{"+name+"}}", vals[name])
	}
	return strings.NewReplacer(pairs...).Replace(template), nil
}
