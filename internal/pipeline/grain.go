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

	"github.com/valyala/fastrand"

	"github.com/mlnoga/filmr/internal/backend"
	"github.com/mlnoga/filmr/internal/backend/cpu"
	"github.com/mlnoga/filmr/internal/blur"
	"github.com/mlnoga/filmr/internal/buffer"
	"github.com/mlnoga/filmr/internal/filmstock"
)

const (
	referenceWidth   = 2048
	systemLimitLPMM  = 40
	referenceFrameMM = 36
)

var grainStage = funcStage{
	name: "grain",
	cpu:  grainCPU,
}

// systemSigma returns the combined optical/system PSF, in pixels at the
// 2048px reference width, from the stock's resolution and an assumed
// 40 lp/mm system limit, via reciprocal-quadrature-sum.
func systemSigma(resolutionLPMM float64) float64 {
	effectiveLPMM := 1 / math.Sqrt(1/(resolutionLPMM*resolutionLPMM)+1/(systemLimitLPMM*systemLimitLPMM))
	pixelsPerMMRef := float64(referenceWidth) / referenceFrameMM
	return (0.5 / effectiveLPMM) * pixelsPerMMRef
}

// grainCPU adds density-dependent, spatially correlated noise in place.
func grainCPU(req *backend.Request) {
	if !req.Config.EnableGrain {
		return
	}
	g := req.Stock.Grain
	img := req.Image
	s := float64(img.W) / referenceWidth

	sysSigma := systemSigma(req.Stock.ResolutionLPMM)
	fineDampening := 1 / (1 + 0.35*sysSigma)
	coarseDampening := 1 / (1 + 0.10*sysSigma)

	alpha := g.Alpha * s * s * fineDampening
	sigmaRead := g.SigmaRead * s
	coarseAlpha := g.Alpha * s * s * coarseDampening

	fine := buffer.NewPooled(img.W, img.H)
	defer buffer.Release(fine)
	generateNoise(fine, img, g, alpha, sigmaRead)
	fineSigma := (g.BlurRadius + sysSigma) * s
	blur.Gaussian(fine, float32(fineSigma))

	var coarse *buffer.Image
	if g.HighlightCoarseness > 0 {
		coarse = buffer.NewPooled(img.W, img.H)
		defer buffer.Release(coarse)
		generateNoise(coarse, img, g, coarseAlpha, sigmaRead)
		coarseSigma := (5*g.BlurRadius + sysSigma) * s
		blur.Gaussian(coarse, float32(coarseSigma))
	}

	cpu.Parallel(img.H, func(y int) {
		for x := 0; x < img.W; x++ {
			dr, dg, db := img.At(x, y)
			fr, fgc, fb := fine.At(x, y)

			var clumpMix float64
			if coarse != nil {
				clumpMix = g.HighlightCoarseness * logistic(float64(dg), 1.2, 5.0)
			}

			var cr, cgc, cb float32
			if coarse != nil {
				cr, cgc, cb = coarse.At(x, y)
			}

			nr := dr + fr + float32(clumpMix)*cr
			ng := dg + fgc + float32(clumpMix)*cgc
			nb := db + fb + float32(clumpMix)*cb

			img.Set(x, y, clampNonNeg(nr), clampNonNeg(ng), clampNonNeg(nb))
		}
	})
}

func clampNonNeg(v float32) float32 {
	if v < 0 {
		return 0
	}
	return v
}

// logistic is the sigmoid used to mix in the coarse clump layer, centered
// at 1.2 density with slope 5.
func logistic(d, center, slope float64) float64 {
	return 1 / (1 + math.Exp(-slope*(d-center)))
}

// generateNoise fills out with the fine or coarse noise layer: per pixel,
// variance v = (alpha*D^1.5 + sigma_read^2)*(1+roughness*sin(pi*clamp(D,0,1))),
// drawn as a zero-mean Gaussian. Monochrome stocks draw one sample and
// broadcast; color stocks blend a shared luminance sample with per-channel
// samples by color_correlation.
func generateNoise(out, density *buffer.Image, g filmstock.GrainModel, alpha, sigmaRead float64) {
	cpu.Parallel(out.H, func(y int) {
		for x := 0; x < out.W; x++ {
			dr, dg, db := density.At(x, y)

			if g.Monochrome {
				v := noiseVariance(float64(dg), alpha, sigmaRead, g.Roughness)
				n := gaussianSample() * math.Sqrt(v)
				out.Set(x, y, float32(n), float32(n), float32(n))
				continue
			}

			vShared := noiseVariance(float64(dg), alpha, sigmaRead, g.Roughness)
			nShared := gaussianSample() * math.Sqrt(vShared)

			vr := noiseVariance(float64(dr), alpha, sigmaRead, g.Roughness)
			vg := vShared
			vb := noiseVariance(float64(db), alpha, sigmaRead, g.Roughness)
			nr := gaussianSample() * math.Sqrt(vr)
			ng := gaussianSample() * math.Sqrt(vg)
			nb := gaussianSample() * math.Sqrt(vb)

			c := g.ColorCorrelation
			out.Set(x, y,
				float32(c*nShared+(1-c)*nr),
				float32(c*nShared+(1-c)*ng),
				float32(c*nShared+(1-c)*nb))
		}
	})
}

func noiseVariance(d, alpha, sigmaRead, roughness float64) float64 {
	clamped := d
	if clamped < 0 {
		clamped = 0
	} else if clamped > 1 {
		clamped = 1
	}
	base := alpha*math.Pow(math.Max(d, 0), 1.5) + sigmaRead*sigmaRead
	return base * (1 + roughness*math.Sin(math.Pi*clamped))
}

// gaussianSample draws one standard-normal sample via Box-Muller over two
// fastrand uniform draws; fastrand is thread-safe, so this is safe to call
// from the row-parallel workers above without per-goroutine state.
func gaussianSample() float64 {
	u1 := (float64(fastrand.Uint32()) + 1) / (1 << 32) // avoid log(0)
	u2 := float64(fastrand.Uint32()) / (1 << 32)
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
