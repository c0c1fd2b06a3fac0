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

// Package spectral implements the fixed-grid sampled spectral power
// distribution used by the Develop stage's spectral uplift precomputation.
package spectral

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	LambdaStart = 380.0
	LambdaEnd   = 780.0
	LambdaStep  = 5.0
	Bins        = 81 // (780-380)/5 + 1
)

// Spectrum is an 81-bin sampled spectral power distribution over
// [380,780]nm at 5nm steps.
type Spectrum struct {
	Power [Bins]float64
}

// Wavelength returns the wavelength in nm of bin i.
func Wavelength(i int) float64 {
	return LambdaStart + float64(i)*LambdaStep
}

// NewZero returns a spectrum with all bins zero.
func NewZero() Spectrum {
	return Spectrum{}
}

// NewFlat returns a spectrum with constant power in every bin.
func NewFlat(value float64) Spectrum {
	var s Spectrum
	for i := range s.Power {
		s.Power[i] = value
	}
	return s
}

// NewGaussian returns a unit-amplitude Gaussian spectral curve centered at
// peakNM with the given full-width-at-half-maximum in nm.
func NewGaussian(peakNM, fwhmNM float64) Spectrum {
	return NewGaussianWithAmplitude(peakNM, fwhmNM, 1.0)
}

// NewGaussianWithAmplitude is NewGaussian with an explicit peak amplitude.
func NewGaussianWithAmplitude(peakNM, fwhmNM, amplitude float64) Spectrum {
	var s Spectrum
	if fwhmNM <= 0 {
		// zero width encodes total insensitivity, e.g. orthochromatic
		// stocks with no red-layer response.
		return s
	}
	// fwhm = 2*sqrt(2*ln2)*sigma
	sigma := fwhmNM / (2 * math.Sqrt(2*math.Ln2))
	for i := range s.Power {
		lambda := Wavelength(i)
		d := lambda - peakNM
		s.Power[i] = amplitude * math.Exp(-(d*d)/(2*sigma*sigma))
	}
	return s
}

// Add returns the pointwise sum a+b.
func (a Spectrum) Add(b Spectrum) Spectrum {
	var out Spectrum
	for i := range out.Power {
		out.Power[i] = a.Power[i] + b.Power[i]
	}
	return out
}

// Scale returns a scaled by k.
func (a Spectrum) Scale(k float64) Spectrum {
	var out Spectrum
	for i := range out.Power {
		out.Power[i] = a.Power[i] * k
	}
	return out
}

// Mul returns the pointwise product a*b.
func (a Spectrum) Mul(b Spectrum) Spectrum {
	var out Spectrum
	for i := range out.Power {
		out.Power[i] = a.Power[i] * b.Power[i]
	}
	return out
}

// IntegrateProduct computes sum(a*b) * LambdaStep, the discrete spectral
// integral used throughout the Develop stage's precomputation.
func IntegrateProduct(a, b Spectrum) float64 {
	prod := a.Mul(b)
	return stat.Mean(prod.Power[:], nil) * Bins * LambdaStep
}

// D65 returns a coarse daylight-illuminant approximation: this engine does
// not need colorimetric accuracy of the real CIE D65 table, only a smooth
// daylight-like shape relative to which camera and film sensitivities are
// integrated, so a broad flat-topped curve anchored near 560nm stands in
// for it.
func D65() Spectrum {
	return NewGaussianWithAmplitude(560, 400, 1.0)
}
