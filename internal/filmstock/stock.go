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

// Package filmstock is the immutable descriptor of an analog film: its
// characteristic curves, spectral sensitivities, grain statistics,
// halation, dye coupling and reciprocity behavior. A FilmStock is built by
// preset or studio editor and is then read-only through a pipeline run.
package filmstock

import (
	"fmt"
	"math"

	"github.com/mlnoga/filmr/internal/filmrerr"
)

// FilmType distinguishes the three families of stock this engine models.
// Each carries a default paper gamma used by the Output stage.
type FilmType int

const (
	ColorNegative FilmType = iota
	ColorSlide
	BwNegative
)

func (t FilmType) String() string {
	switch t {
	case ColorNegative:
		return "ColorNegative"
	case ColorSlide:
		return "ColorSlide"
	case BwNegative:
		return "BwNegative"
	default:
		return "Unknown"
	}
}

// PaperGamma returns the default output paper gamma for the film type:
// negative stocks (color or B&W) print through a 2.0 gamma paper, slide
// stocks are viewed directly at a flatter 1.5.
func (t FilmType) PaperGamma() float64 {
	if t == ColorSlide {
		return 1.5
	}
	return 2.0
}

// CharacteristicCurve is the smooth sigmoid H-D mapping log10(E) -> density
// for one film layer.
type CharacteristicCurve struct {
	DMin            float64 // base+fog density
	DMax            float64 // saturation density
	Gamma           float64 // linear-region slope
	ExposureOffset  float64 // speed point E0, in linear exposure units
	ShoulderPoint   float64 // normalized knee position, reserved for future toe/shoulder shaping
}

// K returns the sigmoid steepness such that the slope at E0 equals Gamma.
func (c CharacteristicCurve) K() float64 {
	return 4 * c.Gamma / (c.DMax - c.DMin)
}

// Map evaluates the curve at a given log10 exposure.
func (c CharacteristicCurve) Map(logE float64) float64 {
	logE0 := math.Log10(c.ExposureOffset)
	sigma := 1 / (1 + math.Exp(-c.K()*(logE-logE0)))
	return c.DMin + (c.DMax-c.DMin)*sigma
}

// Validate checks the curve invariants from the data model.
func (c CharacteristicCurve) Validate() error {
	if c.DMax <= c.DMin || c.DMin < 0 {
		return fmt.Errorf("%w: d_max must exceed d_min >= 0", filmrerr.ErrInvalidFilmStock)
	}
	if c.Gamma <= 0 {
		return fmt.Errorf("%w: gamma must be positive", filmrerr.ErrInvalidFilmStock)
	}
	if c.ExposureOffset <= 0 {
		return fmt.Errorf("%w: exposure_offset must be positive", filmrerr.ErrInvalidFilmStock)
	}
	return nil
}

// GrainModel parameterizes the density-dependent spatially correlated noise
// added in the Grain stage.
type GrainModel struct {
	Alpha               float64 // shot-noise coefficient
	SigmaRead           float64 // read-noise floor
	Monochrome          bool
	BlurRadius          float64 // spatial correlation scale in px at 2048px reference width
	Roughness           float64 // [0,1] midtone variance modulation
	ColorCorrelation    float64 // [0,1] per-channel-shared noise fraction
	ShadowNoise         float64
	HighlightCoarseness float64 // weight of the secondary coarse-noise layer
}

// Reciprocity holds the Schwarzschild-like exponent used by the non-linear
// long-exposure correction in the Develop stage.
type Reciprocity struct {
	Beta float64
}

// Halation parameterizes the red-biased base-reflection glow.
type Halation struct {
	Strength  float64
	Threshold float64
	Sigma     float64 // fraction of image width
	Tint      [3]float64
}

// SpectralParams carries the six floats (peak_nm, fwhm_nm) per layer used
// to synthesize the film's Gaussian spectral-sensitivity curves, plus an
// optional amplitude per layer (the B-channel stock curves commonly peak a
// little hotter than R/G to compensate for the camera's blue rolloff).
type SpectralParams struct {
	RPeakNM, RFwhmNM, RAmplitude float64
	GPeakNM, GFwhmNM, GAmplitude float64
	BPeakNM, BFwhmNM, BAmplitude float64
}

// Stock is the immutable descriptor of a film.
type Stock struct {
	Manufacturer string
	Name         string
	FilmType     FilmType
	ISO          float64

	RCurve, GCurve, BCurve CharacteristicCurve

	// ColorMatrix is the 3x3 inter-layer coupling matrix applied in
	// density space after curve lookup.
	ColorMatrix [3][3]float64

	Spectral SpectralParams
	Grain    GrainModel

	ResolutionLPMM float64
	Reciprocity    Reciprocity
	Halation       Halation
}

// MonochromeMatrix returns the averaging color matrix convention used by
// monochrome stocks: every row is [1/3, 1/3, 1/3].
func MonochromeMatrix() [3][3]float64 {
	const third = 1.0 / 3.0
	return [3][3]float64{
		{third, third, third},
		{third, third, third},
		{third, third, third},
	}
}

// Validate checks the Stock-level invariants from the data model.
func (s Stock) Validate() error {
	for _, c := range []CharacteristicCurve{s.RCurve, s.GCurve, s.BCurve} {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	type peakCheck struct{ peak, fwhm float64 }
	for _, pc := range []peakCheck{
		{s.Spectral.RPeakNM, s.Spectral.RFwhmNM},
		{s.Spectral.GPeakNM, s.Spectral.GFwhmNM},
		{s.Spectral.BPeakNM, s.Spectral.BFwhmNM},
	} {
		// a zero fwhm encodes total layer insensitivity (e.g.
		// orthochromatic stocks); its peak is not meaningful.
		if pc.fwhm <= 0 {
			continue
		}
		if pc.peak < 380 || pc.peak > 780 {
			return fmt.Errorf("%w: spectral peak %.1fnm out of [380,780]", filmrerr.ErrInvalidFilmStock, pc.peak)
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.IsNaN(s.ColorMatrix[i][j]) || math.IsInf(s.ColorMatrix[i][j], 0) {
				return fmt.Errorf("%w: color matrix entry [%d][%d] not finite", filmrerr.ErrInvalidFilmStock, i, j)
			}
		}
	}
	return nil
}
