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

package backend

import (
	"github.com/mlnoga/filmr/internal/buffer"
	"github.com/mlnoga/filmr/internal/filmstock"
	"github.com/mlnoga/filmr/internal/simconfig"
)

// Request carries everything one pipeline run needs: the mutable buffer,
// the immutable film stock and simulation config, and an optional logger
// hook stages can report through without importing filmrlog directly.
type Request struct {
	Image  *buffer.Image
	Stock  filmstock.Stock
	Config simconfig.Config
	Logf   func(msg string, args ...any)
}

// Log reports a structured event if the request was given a logger hook.
func (r *Request) Log(msg string, args ...any) {
	if r.Logf != nil {
		r.Logf(msg, args...)
	}
}
