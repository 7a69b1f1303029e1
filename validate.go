package iniconf

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// RulePrefix names the sections of a rules document that declare
// validation rules (spec.md §4.7, §6).
const RulePrefix = "rule/"

// ErrorList is the ordered, cursor-navigable list of diagnostic strings
// produced by validators (spec.md §3 "Error object").
type ErrorList struct {
	messages []string
	cursor   int
}

// NewErrorList creates an empty error list.
func NewErrorList() *ErrorList { return &ErrorList{} }

// Append adds a message to the end of the list.
func (e *ErrorList) Append(msg string) {
	if e == nil {
		return
	}
	e.messages = append(e.messages, msg)
}

// ResetCursor rewinds the cursor to the first message.
func (e *ErrorList) ResetCursor() {
	if e != nil {
		e.cursor = 0
	}
}

// Current returns the message at the cursor, or ("", false) if the
// cursor is at or past the end.
func (e *ErrorList) Current() (string, bool) {
	if e == nil || e.cursor >= len(e.messages) {
		return "", false
	}
	return e.messages[e.cursor], true
}

// Advance moves the cursor forward one message.
func (e *ErrorList) Advance() {
	if e != nil && e.cursor < len(e.messages) {
		e.cursor++
	}
}

// AtEnd reports whether the cursor has passed the last message.
func (e *ErrorList) AtEnd() bool {
	return e == nil || e.cursor >= len(e.messages)
}

// Count reports the total number of messages.
func (e *ErrorList) Count() int {
	if e == nil {
		return 0
	}
	return len(e.messages)
}

// Messages returns every accumulated message, in order.
func (e *ErrorList) Messages() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.messages...)
}

// Validator is a named rule function: given the rule's own section name,
// the rules document, the configuration under test, and a per-rule error
// accumulator, it reports diagnostics through errs and may return a
// non-zero code to contribute a synthetic diagnostic (spec.md §4.7).
type Validator func(ruleSection string, rules *Configuration, cfg *Configuration, errs *ErrorList) int

// builtinValidators is the contract-mandated table (spec.md §9
// "Validator extensibility": "The two built-ins are part of the contract
// and must be present").
var builtinValidators = map[string]Validator{
	"allowed_options":  validateAllowedOptions,
	"allowed_sections": validateAllowedSections,
}

// Validate runs every rule/* section of rules against cfg, dispatching to
// built-ins first, then extras (spec.md §4.7:
// "look up the named validator in a table (built-ins first, then
// caller-supplied extras)"), and returns the aggregate ErrorList.
func Validate(rules *Configuration, cfg *Configuration, extras map[string]Validator) *ErrorList {
	agg := NewErrorList()

	for _, name := range rules.Sections() {
		if !strings.HasPrefix(name, RulePrefix) {
			continue
		}
		sec, _ := rules.Section(name)

		nameAttr, ok := sec.Get("validator")
		if !ok {
			agg.Append(fmt.Sprintf("[%s]: missing 'validator' attribute", name))
			continue
		}
		validatorName := strings.TrimSpace(nameAttr.String())

		fn, ok := builtinValidators[validatorName]
		if !ok {
			if extras != nil {
				if efn, eok := extras[validatorName]; eok && efn != nil {
					fn = efn
					ok = true
				}
			}
		}
		if !ok {
			agg.Append(fmt.Sprintf("[%s]: unknown validator %q", name, validatorName))
			continue
		}

		ruleErrs := NewErrorList()
		code := fn(name, rules, cfg, ruleErrs)
		for _, msg := range ruleErrs.Messages() {
			agg.Append(fmt.Sprintf("[%s]: %s", name, msg))
		}
		if code != 0 {
			agg.Append(fmt.Sprintf("[%s]: validator returned code %d", name, code))
		}
	}

	return agg
}

// compileRegexOrReport compiles pattern, appending a diagnostic through
// errs (rather than returning an error) if it fails to compile, matching
// spec.md §4.7: "Regular-expression compilation failures produce
// diagnostics containing the compiler's message; rules that cannot
// compile are skipped."
func compileRegexOrReport(pattern string, errs *ErrorList) (*regexp.Regexp, bool) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		errs.Append(errors.Wrapf(err, "invalid regular expression %q", pattern).Error())
		return nil, false
	}
	return re, true
}
