package region

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heliocat/domain"
	"heliocat/units"
)

func TestParseChaincodeHelioprojective(t *testing.T) {
	uc := units.NewContext()
	reg, err := ParseChaincode("POLYGON((10 20, 30 40, 50 60))", FrameHelioprojective, "ignored", uc)
	require.NoError(t, err)

	assert.Equal(t, FrameHelioprojective, reg.Frame)
	assert.Equal(t, RepresentationSpherical, reg.Representation)
	require.Len(t, reg.Vertices, 3)

	arcsec, err := units.Lookup("arcsec")
	require.NoError(t, err)
	assert.True(t, reg.Vertices[0].C1.Equal(units.NewQuantity(10, arcsec)))
	assert.True(t, reg.Vertices[0].C2.Equal(units.NewQuantity(20, arcsec)))
	assert.True(t, reg.Vertices[2].C1.Equal(units.NewQuantity(50, arcsec)))
	assert.Nil(t, reg.Vertices[0].C3)
}

func TestParseChaincodeMissingDelimiters(t *testing.T) {
	uc := units.NewContext()
	for _, value := range []string{
		"POLYGON((10 20, 30 40",
		"10 20, 30 40))",
		"",
	} {
		_, err := ParseChaincode(value, FrameHelioprojective, "", uc)
		require.Error(t, err, "value %q", value)
		var malformed *domain.MalformedChaincodeError
		require.True(t, errors.As(err, &malformed), "value %q", value)
		assert.Equal(t, value, malformed.Raw)
	}
}

func TestParseChaincodeBadVertex(t *testing.T) {
	uc := units.NewContext()
	_, err := ParseChaincode("POLYGON((10, 30 40))", FrameHelioprojective, "", uc)
	var malformed *domain.MalformedChaincodeError
	require.True(t, errors.As(err, &malformed))

	_, err = ParseChaincode("POLYGON((ten twenty))", FrameHelioprojective, "", uc)
	require.True(t, errors.As(err, &malformed))
}

func TestParseChaincodeHeliocentric(t *testing.T) {
	uc := units.NewContext()
	reg, err := ParseChaincode("POLYGON((0.5 120, 0.7 130))", FrameHeliocentric, "", uc)
	require.NoError(t, err)

	assert.Equal(t, RepresentationCylindrical, reg.Representation)
	require.Len(t, reg.Vertices, 2)

	rsun, err := units.Lookup("R_sun")
	require.NoError(t, err)
	au, err := units.Lookup("AU")
	require.NoError(t, err)
	assert.True(t, reg.Vertices[0].C1.Equal(units.NewQuantity(0.5, rsun)))
	// Every heliocentric vertex sits at a fixed 1 AU radial distance.
	for _, v := range reg.Vertices {
		require.NotNil(t, v.C3)
		assert.True(t, v.C3.Equal(units.NewQuantity(1, au)))
	}
}

func TestParseChaincodeICRSUsesRawUnit(t *testing.T) {
	uc := units.NewContext()
	reg, err := ParseChaincode("((1 2, 3 4))", FrameICRS, "degrees", uc)
	require.NoError(t, err)

	deg, err := units.Lookup("deg")
	require.NoError(t, err)
	assert.True(t, reg.Vertices[1].C1.Equal(units.NewQuantity(3, deg)))
	assert.True(t, reg.Vertices[1].C2.Equal(units.NewQuantity(4, deg)))
}

func TestParseChaincodeICRSIncompatibleUnit(t *testing.T) {
	uc := units.NewContext()
	_, err := ParseChaincode("((1 2))", FrameICRS, "km", uc)
	require.Error(t, err)
	var convErr *domain.UnitConversionError
	assert.True(t, errors.As(err, &convErr))
}

func TestParseChaincodeUnknownFrameDefaultsToDegrees(t *testing.T) {
	uc := units.NewContext()
	reg, err := ParseChaincode("POLYGON((100 -30, 110 -20))", "heliographic_carrington", "arcsec", uc)
	require.NoError(t, err)

	deg, err := units.Lookup("deg")
	require.NoError(t, err)
	assert.True(t, reg.Vertices[0].C1.Equal(units.NewQuantity(100, deg)))
	assert.True(t, reg.Vertices[0].C2.Equal(units.NewQuantity(-30, deg)))
}
