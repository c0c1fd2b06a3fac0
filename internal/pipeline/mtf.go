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
	"github.com/mlnoga/filmr/internal/backend"
	"github.com/mlnoga/filmr/internal/blur"
)

var mtfStage = funcStage{
	name: "mtf",
	cpu:  mtfCPU,
}

// mtfCPU approximates finite film resolution as a small Gaussian blur.
// pixels_per_mm assumes a 35mm (36mm wide) frame.
func mtfCPU(req *backend.Request) {
	img := req.Image
	pixelsPerMM := float32(img.W) / 36
	sigma := float32(0.5/req.Stock.ResolutionLPMM) * pixelsPerMM
	if sigma > 0.5 {
		blur.Gaussian(img, sigma)
	}
}
