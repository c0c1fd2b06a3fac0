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

// Package colorimetry holds small color-science helpers shared by the
// Output stage and the exposure estimator, built atop go-colorful the way
// nightlight's pixelops.go leans on it for HSL/CIE conversions.
package colorimetry

import colorful "github.com/lucasb-eyer/go-colorful"

// Rec709Luma returns the ITU-R BT.709 luma of a linear RGB triple, the
// weighting used throughout the pipeline (halation threshold, output
// saturation).
func Rec709Luma(r, g, b float64) float64 {
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// SaturationBlend adjusts c around luminance L by the given saturation
// factor: c <- L + (c-L)*saturation.
func SaturationBlend(c, l, saturation float64) float64 {
	return l + (c-l)*saturation
}

// MedianLuma converts a slice of clamped-to-[0,1] linear RGB triples into
// go-colorful colors and returns the median HSL lightness, used by the
// exposure estimator to locate a stock's speed point without assuming a
// particular luma weighting is also a good lightness proxy.
func MedianLuma(samples [][3]float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	lightness := make([]float64, len(samples))
	for i, s := range samples {
		col := colorful.Color{R: clamp01(s[0]), G: clamp01(s[1]), B: clamp01(s[2])}
		_, _, l := col.Hsl()
		lightness[i] = l
	}
	return median(lightness)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	// insertion sort: sample counts here are small (stride-sampled
	// exposure search), so an O(n^2) sort keeps this dependency-free.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
