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

	"github.com/mlnoga/filmr/internal/buffer"
	"github.com/mlnoga/filmr/internal/colorimetry"
	"github.com/mlnoga/filmr/internal/filmstock"
)

// midGraySRGB is the ANSI PH2.30 gray card reference: a properly exposed,
// evenly lit neutral scene should print back to approximately this sRGB
// value, the way a reflected-light meter targets 18% reflectance.
const midGraySRGB = 124.0 / 255.0

// targetGreenDensity inverts the Output stage's transmission and paper-gamma
// mapping (see densityToTransmission and outputCPU) to find the green-layer
// density that would print back to midGraySRGB, so the bisection below
// calibrates exposure against what the image will actually look like rather
// than the characteristic curve's own sigmoid midpoint, which prints far
// brighter than mid-gray.
func targetGreenDensity(stock filmstock.Stock) float64 {
	c := stock.GCurve
	k := c.DMax - c.DMin
	linearTarget := srgbToLinear(midGraySRGB)
	v := math.Pow(clamp01(linearTarget), 1/stock.FilmType.PaperGamma())

	tMin := math.Pow(10, -k)
	t := 1 - v*(1-tMin)
	if t < tMin {
		t = tMin
	}
	dNet := -math.Log10(math.Max(t, logExposureEpsilon))
	return c.DMin + dNet
}

// EstimateExposureTime samples the source image at a small stride, reduces
// it to one representative scene brightness via colorimetry.MedianLuma
// (HSL lightness median, not Rec.709 luma - the two disagree on saturated
// colors, and lightness is the better proxy for where a meter would place
// the needle), and bisects for the exposure_time that places that
// brightness's mapped green-layer density at targetGreenDensity. Used by
// the CLI and REST layers as a default when the caller does not supply one.
func EstimateExposureTime(img *buffer.Image, stock filmstock.Stock) float64 {
	total := img.W * img.H
	stride := total / 4096
	if stride < 1 {
		stride = 1
	}

	samples := make([][3]float64, 0, total/stride+1)
	for idx := 0; idx < total; idx += stride {
		x := idx % img.W
		y := idx / img.W
		r, g, b := img.At(x, y)
		samples = append(samples, [3]float64{
			srgbToLinear(float64(r) / 255),
			srgbToLinear(float64(g) / 255),
			srgbToLinear(float64(b) / 255),
		})
	}
	sceneL := colorimetry.MedianLuma(samples)

	m := computeSpectralMatrix(stock.Spectral)
	_, eGreen, _ := m.apply(sceneL, sceneL, sceneL)
	eGreen = math.Max(eGreen, 0)
	target := targetGreenDensity(stock)

	densityAt := func(t float64) float64 {
		tEff := reciprocityEffectiveTime(t, stock.Reciprocity.Beta)
		logG := math.Log10(math.Max(eGreen*tEff, logExposureEpsilon))
		return stock.GCurve.Map(logG)
	}

	lo, hi := 1e-3, 1e3
	for i := 0; i < 40; i++ {
		mid := math.Sqrt(lo * hi) // bisect in log space
		if densityAt(mid) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return math.Sqrt(lo * hi)
}
