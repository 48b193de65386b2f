package units

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heliocat/domain"
)

func mustLookup(t *testing.T, sym string) Unit {
	t.Helper()
	u, err := Lookup(sym)
	require.NoError(t, err)
	return u
}

func TestResolveAliases(t *testing.T) {
	uc := NewContext()
	cases := []struct {
		raw  string
		want string
	}{
		{"steradian", "sr"},
		{"STERADIAN", "sr"},
		{"arcseconds", "arcsec"},
		{"Arcseconds", "arcsec"},
		{"degrees", "deg"},
		{"sec", "s"},
		{"emx", "Mx"},
		{"amperes", "A"},
		{"ergs", "erg"},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := uc.Resolve(tc.raw)
			require.NoError(t, err)
			assert.True(t, got.Equal(mustLookup(t, tc.want)), "%s should resolve to %s", tc.raw, tc.want)
		})
	}
}

func TestResolveCustomComposites(t *testing.T) {
	uc := NewContext()

	// The catalog's "cm2" label historically names a cubic centimeter.
	cm2, err := uc.Resolve("cm2")
	require.NoError(t, err)
	assert.Equal(t, Dim{Length: 3}, cm2.Dim)
	assert.InEpsilon(t, 1e-6, cm2.Scale, 1e-12)

	m2, err := uc.Resolve("M2")
	require.NoError(t, err)
	assert.Equal(t, Dim{Length: 2}, m2.Dim)
	assert.InEpsilon(t, 1.0, m2.Scale, 1e-12)

	m3, err := uc.Resolve("m3")
	require.NoError(t, err)
	assert.Equal(t, Dim{Length: 3}, m3.Dim)
	assert.InEpsilon(t, 1.0, m3.Scale, 1e-12)
}

func TestResolveLayeredFallback(t *testing.T) {
	uc := NewContext()
	cases := []struct {
		raw  string
		want string
	}{
		{"Angstrom", "Angstrom"}, // verbatim
		{"angstrom", "angstrom"}, // verbatim, lower spelling in catalog
		{"ANGSTROM", "angstrom"}, // lower-cased pass
		{"DEG", "deg"},           // lower-cased pass
		{"mx", "Mx"},             // capitalized pass
		{"hz", "Hz"},             // capitalized pass
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := uc.Resolve(tc.raw)
			require.NoError(t, err)
			assert.True(t, got.Equal(mustLookup(t, tc.want)))
		})
	}
}

func TestResolveExpressions(t *testing.T) {
	uc := NewContext()

	flux, err := uc.Resolve("erg/cm^2/s")
	require.NoError(t, err)
	assert.Equal(t, Dim{Mass: 1, Time: -3}, flux.Dim)
	assert.InEpsilon(t, 1e-3, flux.Scale, 1e-12)

	speed, err := uc.Resolve("km/s")
	require.NoError(t, err)
	assert.Equal(t, Dim{Length: 1, Time: -1}, speed.Dim)
	assert.InEpsilon(t, 1000, speed.Scale, 1e-12)

	density, err := uc.Resolve("cm^-3")
	require.NoError(t, err)
	assert.Equal(t, Dim{Length: -3}, density.Dim)
	assert.InEpsilon(t, 1e6, density.Scale, 1e-12)

	perSecond, err := uc.Resolve("1/s")
	require.NoError(t, err)
	assert.Equal(t, Dim{Time: -1}, perSecond.Dim)

	// Implicit exponent without a caret.
	emission, err := uc.Resolve("cm-3")
	require.NoError(t, err)
	assert.Equal(t, Dim{Length: -3}, emission.Dim)
}

func TestResolveUsesFirstTokenOnly(t *testing.T) {
	uc := NewContext()
	got, err := uc.Resolve("arcsec, arcsec")
	require.NoError(t, err)
	assert.True(t, got.Equal(mustLookup(t, "arcsec")))

	got, err = uc.Resolve("deg deg")
	require.NoError(t, err)
	assert.True(t, got.Equal(mustLookup(t, "deg")))
}

func TestResolveUnknownUnit(t *testing.T) {
	uc := NewContext()
	_, err := uc.Resolve("furlongs")
	require.Error(t, err)
	var parseErr *domain.UnitParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "furlongs", parseErr.Raw)
}

func TestResolveCoordTokenCounts(t *testing.T) {
	uc := NewContext()

	t.Run("one token covers both axes", func(t *testing.T) {
		a1, err := uc.ResolveCoord("deg", 1)
		require.NoError(t, err)
		a2, err := uc.ResolveCoord("deg", 2)
		require.NoError(t, err)
		assert.True(t, a1.Equal(a2))
		_, err = uc.ResolveCoord("deg", 3)
		assert.Error(t, err)
	})

	t.Run("two tokens map in order", func(t *testing.T) {
		a1, err := uc.ResolveCoord("arcsec, deg", 1)
		require.NoError(t, err)
		a2, err := uc.ResolveCoord("arcsec, deg", 2)
		require.NoError(t, err)
		assert.True(t, a1.Equal(mustLookup(t, "arcsec")))
		assert.True(t, a2.Equal(mustLookup(t, "deg")))
		_, err = uc.ResolveCoord("arcsec, deg", 3)
		assert.Error(t, err)
	})

	t.Run("three tokens map one per axis", func(t *testing.T) {
		a3, err := uc.ResolveCoord("deg, deg, km", 3)
		require.NoError(t, err)
		assert.True(t, a3.Equal(mustLookup(t, "km")))
	})
}

func TestContextsAreIndependent(t *testing.T) {
	// Each context owns its alias and custom tables; concurrent resolution
	// must not interfere.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uc := NewContext()
			u, err := uc.Resolve("cm2")
			if err != nil || u.Dim != (Dim{Length: 3}) {
				t.Errorf("cm2 resolution changed under concurrency: %v %v", u, err)
			}
		}()
	}
	wg.Wait()
}
