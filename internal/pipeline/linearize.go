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

package pipeline

import (
	"math"

	"github.com/mlnoga/filmr/internal/backend"
	"github.com/mlnoga/filmr/internal/backend/cpu"
)

// srgbToLinearLUT is the precomputed 256-entry lookup table for the IEC
// 61966-2-1 transfer function, built once at package init.
var srgbToLinearLUT [256]float32

func init() {
	for i := range srgbToLinearLUT {
		srgbToLinearLUT[i] = float32(srgbToLinear(float64(i) / 255))
	}
}

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// LinearToSRGB is the inverse transfer function, used by the Output stage.
func LinearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

var linearizeStage = funcStage{
	name: "linearize",
	cpu:  linearizeCPU,
}

// linearizeCPU converts the buffer in place from sRGB bytes (stored as
// float32 in [0,255]) to linear RGB in [0,1], via the 256-entry LUT.
func linearizeCPU(req *backend.Request) {
	img := req.Image
	cpu.Parallel(img.H, func(y int) {
		row := img.Row(y)
		for i := 0; i < len(row); i++ {
			idx := int(row[i] + 0.5)
			if idx < 0 {
				idx = 0
			} else if idx > 255 {
				idx = 255
			}
			row[i] = srgbToLinearLUT[idx]
		}
	})
}
