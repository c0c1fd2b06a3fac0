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

// Package simconfig is the per-invocation SimulationConfig: everything
// about a single process_image call that is not part of the FilmStock
// itself.
package simconfig

// OutputMode selects how density is converted back to a viewable image.
type OutputMode int

const (
	Positive OutputMode = iota
	Negative
)

// WhiteBalanceMode selects the Develop stage's per-layer gain strategy.
type WhiteBalanceMode int

const (
	WBAuto WhiteBalanceMode = iota
	WBGray
	WBWhite
	WBOff
)

// LightLeakShape is the falloff family used by one LightLeak.
type LightLeakShape int

const (
	ShapeCircle LightLeakShape = iota
	ShapeLinear
	ShapeOrganic
	ShapePlasma
)

// LightLeak is one light source composited onto the density buffer.
type LightLeak struct {
	PositionX, PositionY float64 // normalized [0,1]
	Color                [3]float64
	Radius               float64 // fraction of min(W,H)
	Intensity            float64
	Shape                LightLeakShape
	Rotation             float64 // radians
	Roughness            float64 // [0,1]
}

// LightLeakConfig is the Light Leak stage's full configuration.
type LightLeakConfig struct {
	Enabled bool
	Leaks   []LightLeak
}

// Config is the per-invocation SimulationConfig.
type Config struct {
	ExposureTime          float64 // seconds, t in E = I*t
	EnableGrain           bool
	OutputMode            OutputMode
	WhiteBalanceMode      WhiteBalanceMode
	WhiteBalanceStrength  float64 // [0,1]
	Warmth                float64 // [-1,1]
	Saturation            float64 // >= 0
	LightLeak             LightLeakConfig
	UseGPU                bool
}

// Default returns the engine's default SimulationConfig: one second of
// exposure, grain on, positive output, as users expect.
func Default() Config {
	return Config{
		ExposureTime:         1.0,
		EnableGrain:          true,
		OutputMode:           Positive,
		WhiteBalanceMode:     WBAuto,
		WhiteBalanceStrength: 1.0,
		Saturation:           1.0,
	}
}
