// Package units implements the physical-unit system used to normalize
// catalog columns: a small dimensional algebra, a fixed symbol catalog with
// SI prefixes, and a per-call resolution context that layers the catalog's
// alias table and custom composite units on top.
package units

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"heliocat/domain"
)

// Context scopes alias resolution and custom composite-unit definitions to a
// single resolution pass. Each table build creates a fresh Context, so
// concurrent callers never observe each other's registrations.
type Context struct {
	aliases map[string]Unit
	custom  map[string]Unit
}

// NewContext creates a resolution context carrying the fixed alias table and
// the three custom composite units the catalog uses.
func NewContext() *Context {
	// Historical catalog quirk: the label says square centimeter but the
	// value is cubic.
	cm2 := def("cm2", 1e-6, dimVolume)
	m2 := def("m2", 1, dimArea)
	m3 := def("m3", 1, dimVolume)
	ml := def("ml", 1e-6, dimVolume)

	return &Context{
		custom: map[string]Unit{
			"cm2": cm2,
			"m2":  m2,
			"m3":  m3,
		},
		aliases: map[string]Unit{
			"steradian":         baseUnits["sr"],
			"arcseconds":        baseUnits["arcsec"],
			"degrees":           baseUnits["deg"],
			"sec":               baseUnits["s"],
			"emx":               baseUnits["Mx"],
			"amperes":           baseUnits["A"],
			"ergs":              baseUnits["erg"],
			// The multi-word entries can never match: Resolve tokenizes on
			// spaces before the alias lookup, so no token contains one. They
			// document the catalog's spelled-out labels all the same.
			"cubic centimeter":  ml,
			"square centimeter": cm2,
			"cubic meter":       m3,
			"square meter":      m2,
		},
	}
}

// Resolve converts a raw catalog unit label into a canonical unit. Only the
// first comma- or space-separated token is considered; multi-token
// coordinate labels go through ResolveCoord instead.
func (c *Context) Resolve(raw string) (Unit, error) {
	toks := splitUnitTokens(raw)
	if len(toks) == 0 {
		return Unit{}, domain.ErrUnitParse(raw)
	}
	u, err := c.resolveToken(toks[0])
	if err != nil {
		return Unit{}, domain.ErrUnitParse(raw)
	}
	return u, nil
}

// ResolveCoord resolves the unit for one axis of a coordinate unit string.
// A single token covers axes 1 and 2; two tokens map to axes 1 and 2; three
// tokens map one per axis. Requesting an axis the label does not supply is a
// caller error and fails with a UnitParseError.
func (c *Context) ResolveCoord(raw string, axis int) (Unit, error) {
	toks := splitUnitTokens(raw)
	if len(toks) == 0 || axis < 1 || axis > 3 {
		return Unit{}, domain.ErrUnitParse(raw)
	}
	var tok string
	switch {
	case len(toks) == 1:
		if axis == 3 {
			return Unit{}, domain.ErrUnitParse(raw)
		}
		tok = toks[0]
	case len(toks) == 2:
		if axis == 3 {
			return Unit{}, domain.ErrUnitParse(raw)
		}
		tok = toks[axis-1]
	default:
		tok = toks[axis-1]
	}
	u, err := c.resolveToken(tok)
	if err != nil {
		return Unit{}, domain.ErrUnitParse(raw)
	}
	return u, nil
}

// resolveToken resolves one token: alias table, custom definitions, then a
// layered parse of the token verbatim, lower-cased, and capitalized.
func (c *Context) resolveToken(tok string) (Unit, error) {
	low := strings.ToLower(tok)
	if u, ok := c.aliases[low]; ok {
		return u, nil
	}
	if u, ok := c.custom[low]; ok {
		return u, nil
	}
	for _, cand := range []string{tok, low, capitalize(tok)} {
		if u, err := c.parseExpr(cand); err == nil {
			return u, nil
		}
	}
	return Unit{}, domain.ErrUnitParse(tok)
}

func splitUnitTokens(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
