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

//go:build !gpu

package gpu

import (
	"fmt"

	"github.com/mlnoga/filmr/internal/filmrerr"
)

func initDevice() (*Device, error) {
	return nil, fmt.Errorf("%w: built without the gpu tag", filmrerr.ErrGPUUnavailable)
}

// DispatchCompute would dispatch a 16x16 workgroup compute pass; without
// the gpu build tag there is no device to dispatch against.
func (d *Device) DispatchCompute(width, height int, kernel string) error {
	return filmrerr.ErrGPUUnavailable
}
