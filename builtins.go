package iniconf

import (
	"fmt"
	"regexp"
	"strings"
)

// validateAllowedOptions is the "allowed_options" built-in (spec.md
// §4.7): for every section matching rule parameter section_re, every
// attribute name must equal one of the rule's option values.
func validateAllowedOptions(ruleSection string, rules *Configuration, cfg *Configuration, errs *ErrorList) int {
	sec, _ := rules.Section(ruleSection)

	reAttr, ok := sec.Get("section_re")
	if !ok {
		errs.Append("allowed_options requires 'section_re'")
		return 1
	}
	re, ok := compileRegexOrReport(reAttr.String(), errs)
	if !ok {
		return 1
	}

	allowed := make(map[string]bool)
	for _, v := range sec.All("option") {
		allowed[v.String()] = true
	}

	for _, secName := range cfg.Sections() {
		if !re.MatchString(secName) {
			continue
		}
		target, _ := cfg.Section(secName)
		for _, attr := range target.Attributes() {
			if !allowed[attr] {
				errs.Append(fmt.Sprintf("attribute %q not allowed in section %q", attr, secName))
			}
		}
	}
	return 0
}

// validateAllowedSections is the "allowed_sections" built-in (spec.md
// §4.7): every section in cfg must match one of the rule's exact
// `section` names (optionally case-insensitively) or `section_re`
// patterns.
func validateAllowedSections(ruleSection string, rules *Configuration, cfg *Configuration, errs *ErrorList) int {
	sec, _ := rules.Section(ruleSection)

	caseInsensitive := false
	if ciAttr, ok := sec.Get("case_insensitive"); ok {
		if b, err := ciAttr.Bool(false); err == nil {
			caseInsensitive = b
		}
	}

	names := make([]string, 0)
	for _, v := range sec.All("section") {
		names = append(names, v.String())
	}
	var patterns []string
	for _, v := range sec.All("section_re") {
		patterns = append(patterns, v.String())
	}

	if len(names) == 0 && len(patterns) == 0 {
		errs.Append("allowed_sections requires at least one 'section' or 'section_re'")
		return 1
	}

	var compiled []*regexp.Regexp
	for _, p := range patterns {
		re, ok := compileRegexOrReport(p, errs)
		if !ok {
			continue
		}
		compiled = append(compiled, re)
	}

	for _, secName := range cfg.Sections() {
		if sectionAllowed(secName, names, compiled, caseInsensitive) {
			continue
		}
		errs.Append(fmt.Sprintf("section %q is not allowed", secName))
	}
	return 0
}

func sectionAllowed(name string, exact []string, patterns []*regexp.Regexp, caseInsensitive bool) bool {
	for _, n := range exact {
		if caseInsensitive {
			if strings.EqualFold(n, name) {
				return true
			}
		} else if n == name {
			return true
		}
	}
	for _, p := range patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}
