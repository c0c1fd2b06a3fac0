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

package filmrerr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrapfPreservesCauseForErrorsIs(t *testing.T) {
	wrapped := Wrapf(ErrInvalidPreset, "preset %q", "Portra 9000")
	assert.ErrorIs(t, wrapped, ErrInvalidPreset)
	assert.Contains(t, wrapped.Error(), "Portra 9000")
}

func TestWrapfNilErrReturnsNil(t *testing.T) {
	assert.Nil(t, Wrapf(nil, "no cause"))
}

func TestSentinelsAreDistinct(t *testing.T) {
	all := []error{ErrInvalidImage, ErrIOError, ErrUnsupportedFormat,
		ErrInvalidPreset, ErrInvalidFilmStock, ErrGPUUnavailable, ErrBackendUnknown}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
