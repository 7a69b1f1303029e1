package iniconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAllowedOptionsFlagsUnknownAttribute(t *testing.T) {
	rules, err := ParseString(`[rule/check_common]
validator = allowed_options
section_re = ^common$
option = color
option = count
`, mustAllowDuplicates(t))
	require.NoError(t, err)

	cfg, err := ParseString("[common]\ncolor = blue\nbogus = 1\n", DefaultParseOptions())
	require.NoError(t, err)

	errs := Validate(rules, cfg, nil)
	require.Equal(t, 1, errs.Count())
	msg, ok := errs.Current()
	require.True(t, ok)
	assert.Contains(t, msg, "bogus")
}

func TestValidateAllowedSectionsFlagsUnknownSection(t *testing.T) {
	rules, err := ParseString(`[rule/check_sections]
validator = allowed_sections
section = common
`, DefaultParseOptions())
	require.NoError(t, err)

	cfg, err := ParseString("[common]\nk = 1\n[rogue]\nk = 1\n", DefaultParseOptions())
	require.NoError(t, err)

	errs := Validate(rules, cfg, nil)
	require.Equal(t, 1, errs.Count())
	msg, _ := errs.Current()
	assert.Contains(t, msg, "rogue")
}

func TestValidateUnknownValidatorNameIsReported(t *testing.T) {
	rules, err := ParseString("[rule/mystery]\nvalidator = nonexistent\n", DefaultParseOptions())
	require.NoError(t, err)
	cfg, err := ParseString("[common]\nk = 1\n", DefaultParseOptions())
	require.NoError(t, err)

	errs := Validate(rules, cfg, nil)
	require.Equal(t, 1, errs.Count())
	msg, _ := errs.Current()
	assert.Contains(t, msg, "nonexistent")
}

func TestValidateDispatchesToExtraValidator(t *testing.T) {
	rules, err := ParseString("[rule/custom]\nvalidator = always_fail\n", DefaultParseOptions())
	require.NoError(t, err)
	cfg, err := ParseString("[common]\nk = 1\n", DefaultParseOptions())
	require.NoError(t, err)

	extras := map[string]Validator{
		"always_fail": func(ruleSection string, rules, cfg *Configuration, errs *ErrorList) int {
			errs.Append("boom")
			return 0
		},
	}

	errs := Validate(rules, cfg, extras)
	require.Equal(t, 1, errs.Count())
	msg, _ := errs.Current()
	assert.Contains(t, msg, "boom")
}

func TestErrorListCursorAdvancesAndReportsAtEnd(t *testing.T) {
	errs := NewErrorList()
	errs.Append("a")
	errs.Append("b")

	assert.False(t, errs.AtEnd())
	msg, ok := errs.Current()
	require.True(t, ok)
	assert.Equal(t, "a", msg)

	errs.Advance()
	msg, ok = errs.Current()
	require.True(t, ok)
	assert.Equal(t, "b", msg)

	errs.Advance()
	assert.True(t, errs.AtEnd())
}
