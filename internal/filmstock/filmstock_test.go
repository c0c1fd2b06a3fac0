// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package filmstock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsValidate(t *testing.T) {
	for name, s := range Library() {
		assert.NoError(t, s.Validate(), "preset %q", name)
	}
}

func TestCharacteristicCurveSlopeAtSpeedPoint(t *testing.T) {
	c := CharacteristicCurve{DMin: 0.1, DMax: 2.8, Gamma: 0.6, ExposureOffset: 0.18}
	// at E0, the sigmoid is at its midpoint: D = (DMin+DMax)/2.
	d := c.Map(-0.744727) // log10(0.18)
	assert.InDelta(t, (c.DMin+c.DMax)/2, d, 0.01)
	// and the slope there equals Gamma.
	const h = 1e-4
	slope := (c.Map(-0.744727+h) - c.Map(-0.744727-h)) / (2 * h)
	assert.InDelta(t, c.Gamma, slope, 0.01)
}

// S6: round-trip preset export then import of a modified Portra 400 yields
// a bit-identical structure.
func TestScenarioS6PresetRoundTrip(t *testing.T) {
	original := KodakPortra400()
	original.Grain.Alpha = 0.02 // "modified"

	data, err := EncodeSingle(original)
	require.NoError(t, err)

	decoded, err := DecodeLibrary(data)
	require.NoError(t, err)

	got, ok := decoded[original.Name]
	require.True(t, ok)
	assert.Equal(t, original, got)
}

func TestDecodeLibraryAcceptsCollectionShape(t *testing.T) {
	lib := map[string]Stock{
		"Portra 400": KodakPortra400(),
		"Tri-X 400":  KodakTriX400(),
	}
	data, err := EncodeLibrary(lib)
	require.NoError(t, err)

	decoded, err := DecodeLibrary(data)
	require.NoError(t, err)
	assert.Len(t, decoded, 2)
	assert.Equal(t, lib["Portra 400"].ISO, decoded["Portra 400"].ISO)
}

func TestValidateRejectsInvertedCurve(t *testing.T) {
	s := StandardDaylight()
	s.RCurve.DMax = s.RCurve.DMin
	assert.Error(t, s.Validate())
}

func TestMonochromeMatrixRowsAreThirds(t *testing.T) {
	m := MonochromeMatrix()
	for _, row := range m {
		for _, v := range row {
			assert.InDelta(t, 1.0/3.0, v, 1e-12)
		}
	}
}
