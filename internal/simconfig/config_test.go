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

package simconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsSaneAndEnablesGrain(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1.0, cfg.ExposureTime)
	assert.True(t, cfg.EnableGrain)
	assert.Equal(t, Positive, cfg.OutputMode)
	assert.Equal(t, WBAuto, cfg.WhiteBalanceMode)
	assert.Equal(t, 1.0, cfg.WhiteBalanceStrength)
	assert.False(t, cfg.LightLeak.Enabled)
}

func TestLightLeakConfigHoldsMultipleLeaks(t *testing.T) {
	cfg := LightLeakConfig{
		Enabled: true,
		Leaks: []LightLeak{
			{PositionX: 0.1, PositionY: 0.1, Shape: ShapeCircle, Radius: 0.2, Intensity: 0.5},
			{PositionX: 0.9, PositionY: 0.9, Shape: ShapePlasma, Radius: 0.3, Intensity: 0.8},
		},
	}
	assert.Len(t, cfg.Leaks, 2)
	assert.Equal(t, ShapePlasma, cfg.Leaks[1].Shape)
}
