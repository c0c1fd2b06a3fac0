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
	"github.com/mlnoga/filmr/internal/filmstock"
	"github.com/mlnoga/filmr/internal/simconfig"
	"github.com/mlnoga/filmr/internal/spectral"
)

var developStage = funcStage{
	name: "develop",
	cpu:  developCPU,
}

// cameraSensitivities is the fixed sRGB-balanced camera model: Gaussian
// curves peaking at 610/540/465nm with fwhm 30/30/25nm, the blue channel
// carrying a 1.2 amplitude boost to compensate for its narrower film-side
// response.
func cameraSensitivities() (r, g, b spectral.Spectrum) {
	r = spectral.NewGaussianWithAmplitude(610, 30, 1.0)
	g = spectral.NewGaussianWithAmplitude(540, 30, 1.0)
	b = spectral.NewGaussianWithAmplitude(465, 25, 1.2)
	return
}

// spectralMatrix is the 3x3 RGB-to-per-layer-exposure matrix M, computed
// once per pipeline run from the stock's spectral params, the fixed camera
// model and the D65 illuminant.
type spectralMatrix [3][3]float64

// apply computes e_i = sum_j M[i][j] * rgb_j.
func (m spectralMatrix) apply(r, g, b float64) (er, eg, eb float64) {
	er = m[0][0]*r + m[0][1]*g + m[0][2]*b
	eg = m[1][0]*r + m[1][1]*g + m[1][2]*b
	eb = m[2][0]*r + m[2][1]*g + m[2][2]*b
	return
}

const calibrationEpsilon = 1e-9

// computeSpectralMatrix synthesizes the camera and film sensitivities,
// calibrates the film sensitivities to a neutral white point, and
// integrates against D65 to produce M. This replaces a per-pixel ~600-flop
// spectral integration with a 9-flop matrix multiply, computed once per
// run rather than once per pixel.
func computeSpectralMatrix(params filmstock.SpectralParams) spectralMatrix {
	camR, camG, camB := cameraSensitivities()
	d65 := spectral.D65()

	rawFilm := [3]spectral.Spectrum{
		spectral.NewGaussianWithAmplitude(params.RPeakNM, params.RFwhmNM, params.RAmplitude),
		spectral.NewGaussianWithAmplitude(params.GPeakNM, params.GFwhmNM, params.GAmplitude),
		spectral.NewGaussianWithAmplitude(params.BPeakNM, params.BFwhmNM, params.BAmplitude),
	}

	// (b) calibrate each film sensitivity so that neutral illumination
	// through the camera sensitivities produces equal per-layer exposure.
	systemWhite := d65.Mul(camR.Add(camG).Add(camB))
	var film [3]spectral.Spectrum
	for i, raw := range rawFilm {
		integral := spectral.IntegrateProduct(raw, systemWhite)
		if integral < calibrationEpsilon {
			integral = calibrationEpsilon
		}
		film[i] = raw.Scale(1 / integral)
	}

	cams := [3]spectral.Spectrum{camR, camG, camB}
	var m spectralMatrix
	for i := 0; i < 3; i++ {
		weighted := film[i].Mul(d65)
		for j := 0; j < 3; j++ {
			m[i][j] = spectral.IntegrateProduct(weighted, cams[j])
		}
	}
	return m
}

// reciprocityEffectiveTime reproduces the source's non-textbook correction
// verbatim: t_eff = t / (1 + beta*log10(t)^2) for t > 1, else t_eff = t.
func reciprocityEffectiveTime(t, beta float64) float64 {
	if t <= 1 {
		return t
	}
	logT := math.Log10(t)
	return t / (1 + beta*logT*logT)
}

const wbGainEpsilon = 1e-9
const logExposureEpsilon = 1e-6

// computeWhiteBalanceGains implements the Auto strategy: sample on a
// stride so ~1000 pixels are visited, apply M, average per layer, derive
// gains so overall luminance is neutral, then interpolate toward identity
// by white_balance_strength.
func computeWhiteBalanceGains(req *backend.Request, m spectralMatrix) (gR, gG, gB float64) {
	cfg := req.Config
	if cfg.WhiteBalanceMode != simconfig.WBAuto {
		gR, gG, gB = 1, 1, 1
	} else {
		img := req.Image
		total := img.W * img.H
		targetSamples := 1000
		stride := total / targetSamples
		if stride < 1 {
			stride = 1
		}

		var sumR, sumG, sumB float64
		var n int
		for idx := 0; idx < total; idx += stride {
			x := idx % img.W
			y := idx / img.W
			r, g, b := img.At(x, y)
			er, eg, eb := m.apply(float64(r), float64(g), float64(b))
			sumR += er
			sumG += eg
			sumB += eb
			n++
		}
		if n == 0 {
			n = 1
		}
		avgR, avgG, avgB := sumR/float64(n), sumG/float64(n), sumB/float64(n)
		l := (avgR + avgG + avgB) / 3

		gainR := l / math.Max(avgR, wbGainEpsilon)
		gainG := l / math.Max(avgG, wbGainEpsilon)
		gainB := l / math.Max(avgB, wbGainEpsilon)

		s := cfg.WhiteBalanceStrength
		gR = 1 + (gainR-1)*s
		gG = 1 + (gainG-1)*s
		gB = 1 + (gainB-1)*s
	}

	// warmth is applied as a post-multiplier regardless of white balance mode.
	gR *= 1 + 0.1*req.Config.Warmth
	gB *= 1 - 0.1*req.Config.Warmth
	return
}

// developCPU transforms linear-light RGB into per-layer log-density.
func developCPU(req *backend.Request) {
	stock := req.Stock
	m := computeSpectralMatrix(stock.Spectral)
	gR, gG, gB := computeWhiteBalanceGains(req, m)
	tEff := reciprocityEffectiveTime(req.Config.ExposureTime, stock.Reciprocity.Beta)

	curves := [3]filmstock.CharacteristicCurve{stock.RCurve, stock.GCurve, stock.BCurve}
	coupling := stock.ColorMatrix

	img := req.Image
	cpu.Parallel(img.H, func(y int) {
		for x := 0; x < img.W; x++ {
			r, g, b := img.At(x, y)
			er, eg, eb := m.apply(float64(r), float64(g), float64(b))

			er = math.Max(er*gR, 0) * tEff
			eg = math.Max(eg*gG, 0) * tEff
			eb = math.Max(eb*gB, 0) * tEff

			logR := math.Log10(math.Max(er, logExposureEpsilon))
			logG := math.Log10(math.Max(eg, logExposureEpsilon))
			logB := math.Log10(math.Max(eb, logExposureEpsilon))

			d := [3]float64{
				curves[0].Map(logR),
				curves[1].Map(logG),
				curves[2].Map(logB),
			}

			dr := coupling[0][0]*d[0] + coupling[0][1]*d[1] + coupling[0][2]*d[2]
			dg := coupling[1][0]*d[0] + coupling[1][1]*d[1] + coupling[1][2]*d[2]
			db := coupling[2][0]*d[0] + coupling[2][1]*d[1] + coupling[2][2]*d[2]

			img.Set(x, y, float32(dr), float32(dg), float32(db))
		}
	})
}
