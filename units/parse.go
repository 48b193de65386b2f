package units

import (
	"fmt"
	"strconv"
)

type factor struct {
	sym string
	exp int
	div bool
}

// parseExpr parses a unit expression: symbols with optional integer powers
// combined by products and quotients. Accepted forms include "km/s",
// "erg/cm^2/s", "cm^-3", "cm-3", "m s-1" and "1/s". Custom units registered
// on the context participate as plain symbols.
func (c *Context) parseExpr(s string) (Unit, error) {
	factors, err := splitFactors(s)
	if err != nil {
		return Unit{}, err
	}
	if len(factors) == 0 {
		return Unit{}, fmt.Errorf("empty unit expression")
	}
	result := def(s, 1, Dim{})
	for _, f := range factors {
		u, err := c.lookupFactor(f.sym)
		if err != nil {
			return Unit{}, err
		}
		u = u.Pow(f.exp)
		if f.div {
			result = result.Div(u)
		} else {
			result = result.Mul(u)
		}
	}
	result.Name = s
	return result, nil
}

func (c *Context) lookupFactor(sym string) (Unit, error) {
	if sym == "1" {
		return def("1", 1, Dim{}), nil
	}
	if u, ok := c.custom[sym]; ok {
		return u, nil
	}
	if u, ok := lookupSymbol(sym); ok {
		return u, nil
	}
	return Unit{}, fmt.Errorf("unknown unit symbol %q", sym)
}

func splitFactors(s string) ([]factor, error) {
	var out []factor
	div := false
	i := 0
	for i < len(s) {
		switch b := s[i]; {
		case b == ' ' || b == '\t' || b == '*' || b == '.':
			i++
		case b == '/':
			div = true
			i++
		case isSymbolByte(b) || (b == '1' && !hasSymbolTail(s, i+1)):
			var sym string
			if b == '1' {
				sym = "1"
				i++
			} else {
				start := i
				for i < len(s) && isSymbolByte(s[i]) {
					i++
				}
				sym = s[start:i]
			}
			exp, next, err := parseExponent(s, i)
			if err != nil {
				return nil, err
			}
			i = next
			out = append(out, factor{sym: sym, exp: exp, div: div})
			div = false
		default:
			return nil, fmt.Errorf("unexpected character %q in unit expression", s[i])
		}
	}
	return out, nil
}

// parseExponent reads an optional power suffix: "^2", "**-1", "2" or "-3".
// Returns exponent 1 and the unchanged position when none is present.
func parseExponent(s string, i int) (int, int, error) {
	j := i
	explicit := false
	if j < len(s) && s[j] == '^' {
		j++
		explicit = true
	} else if j+1 < len(s) && s[j] == '*' && s[j+1] == '*' {
		j += 2
		explicit = true
	}
	sign := 1
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		if s[j] == '-' {
			sign = -1
		}
		j++
		explicit = true
	}
	start := j
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if start == j {
		if explicit {
			return 0, i, fmt.Errorf("missing exponent digits in unit expression %q", s)
		}
		return 1, i, nil
	}
	n, err := strconv.Atoi(s[start:j])
	if err != nil {
		return 0, i, err
	}
	return sign * n, j, nil
}

func isSymbolByte(b byte) bool {
	return b == '_' || b >= 0x80 ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func hasSymbolTail(s string, i int) bool {
	return i < len(s) && isSymbolByte(s[i])
}
