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

package filmstock

// colorNegativeCurve builds the shared R/G/B curve shape most color
// negative stocks in the library use: identical d_min/d_max/gamma across
// layers, with a per-layer exposure_offset carrying the dye-speed spread.
func colorNegativeCurve(dMin, dMax, gamma, exposureOffset float64) CharacteristicCurve {
	return CharacteristicCurve{
		DMin: dMin, DMax: dMax, Gamma: gamma,
		ExposureOffset: exposureOffset, ShoulderPoint: 0.8,
	}
}

// StandardDaylight is a neutral, idealized stock used by the exposure
// calibration scenarios: panchromatic response, unity color matrix,
// moderate grain.
func StandardDaylight() Stock {
	return Stock{
		Manufacturer: "Generic",
		Name:         "Standard Daylight",
		FilmType:     ColorNegative,
		ISO:          100,
		RCurve:       colorNegativeCurve(0.10, 2.8, 0.62, 0.18),
		GCurve:       colorNegativeCurve(0.10, 2.8, 0.62, 0.18),
		BCurve:       colorNegativeCurve(0.10, 2.8, 0.62, 0.18),
		ColorMatrix: [3][3]float64{
			{1.0, 0, 0},
			{0, 1.0, 0},
			{0, 0, 1.0},
		},
		Spectral: SpectralParams{
			RPeakNM: 650, RFwhmNM: 60, RAmplitude: 1.0,
			GPeakNM: 545, GFwhmNM: 50, GAmplitude: 1.0,
			BPeakNM: 465, BFwhmNM: 55, BAmplitude: 1.0,
		},
		Grain: GrainModel{
			Alpha: 0.01, SigmaRead: 0.004, Monochrome: false,
			BlurRadius: 0.6, Roughness: 0.3, ColorCorrelation: 0.7,
			ShadowNoise: 0.001, HighlightCoarseness: 0.03,
		},
		ResolutionLPMM: 100,
		Reciprocity:    Reciprocity{Beta: 0.04},
		Halation:       Halation{Strength: 0.1, Threshold: 0.85, Sigma: 0.012, Tint: [3]float64{1.0, 0.65, 0.45}},
	}
}

// KodakPortra400 is grounded on the manufacturer's published technical
// data: ISO 400, RMS granularity 11 (alpha = 0.0121), gamma 0.65,
// Dmax 2.8 / Dmin 0.12, resolution 125 lp/mm.
func KodakPortra400() Stock {
	return Stock{
		Manufacturer: "Kodak",
		Name:         "Portra 400",
		FilmType:     ColorNegative,
		ISO:          400,
		RCurve:       colorNegativeCurve(0.12, 2.8, 0.65, 0.05),
		GCurve:       colorNegativeCurve(0.12, 2.8, 0.65, 0.05),
		BCurve:       colorNegativeCurve(0.12, 2.8, 0.65, 0.05),
		ColorMatrix: [3][3]float64{
			{1.07, -0.04, -0.03},
			{-0.03, 1.07, -0.04},
			{-0.04, -0.03, 1.07},
		},
		Spectral: SpectralParams{
			RPeakNM: 650, RFwhmNM: 60, RAmplitude: 1.0,
			GPeakNM: 545, GFwhmNM: 50, GAmplitude: 1.0,
			BPeakNM: 465, BFwhmNM: 55, BAmplitude: 1.0,
		},
		Grain: GrainModel{
			Alpha: 0.0121, SigmaRead: 0.005, Monochrome: false,
			BlurRadius: 0.5, Roughness: 0.45, ColorCorrelation: 0.8,
			ShadowNoise: 0.001, HighlightCoarseness: 0.05,
		},
		ResolutionLPMM: 125,
		Reciprocity:    Reciprocity{Beta: 0.05},
		Halation:       Halation{Strength: 0.15, Threshold: 0.85, Sigma: 0.014, Tint: [3]float64{1.0, 0.70, 0.50}},
	}
}

// KodakPortra160 is the finer-grain, slower sibling of Portra 400: ISO
// 160, RMS 9 (alpha = 0.0081), resolution 140 lp/mm.
func KodakPortra160() Stock {
	s := KodakPortra400()
	s.Name = "Portra 160"
	s.ISO = 160
	s.RCurve.DMax, s.GCurve.DMax, s.BCurve.DMax = 2.7, 2.7, 2.7
	s.RCurve.ExposureOffset, s.GCurve.ExposureOffset, s.BCurve.ExposureOffset = 0.13, 0.13, 0.13
	s.Grain.Alpha = 0.0081
	s.ResolutionLPMM = 140
	return s
}

// KodakTriX400 is Kodak's classic black & white negative: orthopanchromatic
// response, monochrome grain with the [1/3,1/3,1/3] averaging color matrix
// convention, RMS 17 (alpha = 0.024), resolution 100 lp/mm.
func KodakTriX400() Stock {
	return Stock{
		Manufacturer: "Kodak",
		Name:         "Tri-X 400",
		FilmType:     BwNegative,
		ISO:          400,
		RCurve:       colorNegativeCurve(0.15, 2.6, 0.7, 0.09),
		GCurve:       colorNegativeCurve(0.15, 2.6, 0.7, 0.09),
		BCurve:       colorNegativeCurve(0.15, 2.6, 0.7, 0.09),
		ColorMatrix:  MonochromeMatrix(),
		Spectral: SpectralParams{
			RPeakNM: 650, RFwhmNM: 60, RAmplitude: 1.0,
			GPeakNM: 545, GFwhmNM: 50, GAmplitude: 1.0,
			BPeakNM: 465, BFwhmNM: 55, BAmplitude: 1.0,
		},
		Grain: GrainModel{
			Alpha: 0.024, SigmaRead: 0.006, Monochrome: true,
			BlurRadius: 0.7, Roughness: 0.5, ColorCorrelation: 1.0,
			ShadowNoise: 0.002, HighlightCoarseness: 0.08,
		},
		ResolutionLPMM: 100,
		Reciprocity:    Reciprocity{Beta: 0.08},
		Halation:       Halation{Strength: 0.05, Threshold: 0.9, Sigma: 0.01, Tint: [3]float64{1.0, 1.0, 1.0}},
	}
}

// FujifilmVelvia50 is a color slide stock: narrow-latitude, high-saturation
// dye set, resolution 160 lp/mm, printed through a flatter slide gamma.
func FujifilmVelvia50() Stock {
	return Stock{
		Manufacturer: "Fujifilm",
		Name:         "Velvia 50",
		FilmType:     ColorSlide,
		ISO:          50,
		RCurve:       colorNegativeCurve(0.2, 3.2, 0.95, 0.02),
		GCurve:       colorNegativeCurve(0.2, 3.2, 0.95, 0.02),
		BCurve:       colorNegativeCurve(0.2, 3.2, 0.95, 0.02),
		ColorMatrix: [3][3]float64{
			{1.15, -0.08, -0.07},
			{-0.06, 1.15, -0.09},
			{-0.07, -0.08, 1.15},
		},
		Spectral: SpectralParams{
			RPeakNM: 640, RFwhmNM: 55, RAmplitude: 1.05,
			GPeakNM: 535, GFwhmNM: 45, GAmplitude: 1.0,
			BPeakNM: 460, BFwhmNM: 50, BAmplitude: 1.1,
		},
		Grain: GrainModel{
			Alpha: 0.006, SigmaRead: 0.003, Monochrome: false,
			BlurRadius: 0.4, Roughness: 0.25, ColorCorrelation: 0.6,
			ShadowNoise: 0.0008, HighlightCoarseness: 0.02,
		},
		ResolutionLPMM: 160,
		Reciprocity:    Reciprocity{Beta: 0.1},
		Halation:       Halation{Strength: 0.08, Threshold: 0.9, Sigma: 0.01, Tint: [3]float64{1.0, 0.6, 0.4}},
	}
}

// IlfordHP5Orthochromatic is a studio-editor demonstration stock: the green
// and blue layers keep the Tri-X 400 panchromatic parameters it is derived
// from, but the red layer's
// fwhm is zeroed, producing total red-layer insensitivity (orthochromatic
// red-blindness, per the pipeline's testable S5 scenario).
func IlfordHP5Orthochromatic() Stock {
	s := KodakTriX400()
	s.Manufacturer = "Ilford"
	s.Name = "HP5 Plus Orthochromatic"
	s.Spectral.RPeakNM, s.Spectral.RFwhmNM = 0, 0
	return s
}

// Library returns the built-in preset table, keyed by manufacturer and stock
// name (e.g. "Kodak Portra 400"). Presets are data, not code: this is a flat
// table, not a base-class hierarchy.
func Library() map[string]Stock {
	stocks := []Stock{
		StandardDaylight(),
		KodakPortra400(),
		KodakPortra160(),
		KodakTriX400(),
		FujifilmVelvia50(),
		IlfordHP5Orthochromatic(),
	}
	out := make(map[string]Stock, len(stocks))
	for _, s := range stocks {
		out[s.Manufacturer+" "+s.Name] = s
	}
	return out
}
