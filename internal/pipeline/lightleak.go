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
	"github.com/mlnoga/filmr/internal/simconfig"
)

var lightLeakStage = funcStage{
	name: "light_leak",
	cpu:  lightLeakCPU,
}

// lightLeakCPU additively composites each configured leak onto the
// buffer, iterating only its bounding box.
func lightLeakCPU(req *backend.Request) {
	cfg := req.Config.LightLeak
	if !cfg.Enabled || len(cfg.Leaks) == 0 {
		return
	}
	img := req.Image
	width, height := float64(img.W), float64(img.H)
	minDim := math.Min(width, height)

	for _, leak := range cfg.Leaks {
		centerX := leak.PositionX * width
		centerY := leak.PositionY * height
		radiusPX := leak.Radius * minDim
		radiusSq := radiusPX * radiusPX

		minX := clampi(int(centerX-radiusPX), 0, img.W)
		maxX := clampi(int(centerX+radiusPX)+1, 0, img.W)
		minY := clampi(int(centerY-radiusPX), 0, img.H)
		maxY := clampi(int(centerY+radiusPX)+1, 0, img.H)

		for y := minY; y < maxY; y++ {
			for x := minX; x < maxX; x++ {
				dx := float64(x) - centerX
				dy := float64(y) - centerY
				distSq := dx*dx + dy*dy
				if distSq >= radiusSq {
					continue
				}
				dist := math.Sqrt(distSq)
				falloff := leakFalloff(leak, x, y, dx, dy, dist, radiusPX)
				factor := falloff * leak.Intensity
				if factor <= 0 {
					continue
				}
				r, g, b := img.At(x, y)
				img.Set(x, y,
					r+float32(leak.Color[0]*factor),
					g+float32(leak.Color[1]*factor),
					b+float32(leak.Color[2]*factor))
			}
		}
	}
}

func leakFalloff(leak simconfig.LightLeak, x, y int, dx, dy, dist, radiusPX float64) float64 {
	switch leak.Shape {
	case simconfig.ShapeLinear:
		nx := -math.Sin(leak.Rotation)
		ny := math.Cos(leak.Rotation)
		distNormal := math.Abs(dx*nx + dy*ny)
		t := distNormal / radiusPX
		return math.Pow(math.Max(1-t, 0), 2)

	case simconfig.ShapeOrganic:
		const noiseScale = 0.05
		n := pseudoNoise(float64(x)*noiseScale, float64(y)*noiseScale)
		distortedRadius := radiusPX * (1 - leak.Roughness*0.5 + n*leak.Roughness)
		t := dist / distortedRadius
		return math.Pow(math.Max(1-t, 0), 3)

	case simconfig.ShapePlasma:
		freq := 0.1 / (leak.Radius + 0.01)
		phase := leak.Rotation * 5
		v := (math.Sin(float64(x)*freq+phase)+math.Cos(float64(y)*freq+phase))*0.5 + 0.5
		t := dist / radiusPX
		base := math.Pow(math.Max(1-t, 0), 2)
		return base * (1 - leak.Roughness + v*leak.Roughness)

	default: // ShapeCircle
		t := dist / radiusPX
		return math.Pow(math.Max(1-t, 0), 2)
	}
}

// pseudoNoise is a cheap hash-based noise function, not a true Perlin
// noise: sin of a linear combination of x and y, rescaled and fractioned.
func pseudoNoise(x, y float64) float64 {
	v := math.Sin(x*12.9898+y*78.233) * 43758.547
	return math.Abs(v - math.Floor(v))
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
