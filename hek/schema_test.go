package hek

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descriptorByName(t *testing.T, descs []Descriptor, name string) Descriptor {
	t.Helper()
	for _, d := range descs {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("no descriptor %q", name)
	return Descriptor{}
}

func TestUnitDescriptors(t *testing.T) {
	descs, err := UnitDescriptors()
	require.NoError(t, err)
	require.NotEmpty(t, descs)

	wavel := descriptorByName(t, descs, "obs_meanwavel")
	assert.Equal(t, KindUnit, wavel.Kind)
	assert.Equal(t, "obs_wavelunit", wavel.UnitProp)

	indicator := descriptorByName(t, descs, "obs_wavelunit")
	assert.Equal(t, KindUnitIndicator, indicator.Kind)
}

func TestCoordDescriptors(t *testing.T) {
	descs, err := CoordDescriptors()
	require.NoError(t, err)

	c1 := descriptorByName(t, descs, "event_coord1")
	assert.Equal(t, KindCoord, c1.Kind)
	assert.Equal(t, 1, c1.Axis)

	c3 := descriptorByName(t, descs, "event_coord3")
	assert.Equal(t, 3, c3.Axis)

	bbox := descriptorByName(t, descs, "hpc_bbox")
	assert.Equal(t, KindChaincode, bbox.Kind)
	assert.Equal(t, "helioprojective", bbox.Frame)
	assert.Equal(t, "event_coordunit", bbox.UnitProp)

	indicator := descriptorByName(t, descs, "event_coordunit")
	assert.Equal(t, KindUnitIndicator, indicator.Kind)
}

func TestClassifyChaincodeRequiresFrame(t *testing.T) {
	_, err := classify(rawDescriptor{Name: "x", IsChaincode: true}, true)
	assert.Error(t, err)
}

func TestClassifyUnitPropWinsOverChaincode(t *testing.T) {
	// A unit-indicator entry that also claims to be a chaincode stays an
	// indicator; the chaincode flag is deliberately inert there.
	d, err := classify(rawDescriptor{Name: "x", IsUnitProp: true, IsChaincode: true}, true)
	require.NoError(t, err)
	assert.Equal(t, KindUnitIndicator, d.Kind)
}
