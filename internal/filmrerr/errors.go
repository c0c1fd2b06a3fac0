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

// Package filmrerr holds the sentinel errors surfaced at the pipeline's
// boundary. The core pipeline itself is total and never returns an error;
// these are raised only by decoding, preset parsing and construction.
package filmrerr

import "github.com/pkg/errors"

var (
	ErrInvalidImage       = errors.New("invalid image")
	ErrIOError            = errors.New("i/o error")
	ErrUnsupportedFormat  = errors.New("unsupported format")
	ErrInvalidPreset      = errors.New("invalid preset")
	ErrInvalidFilmStock   = errors.New("invalid film stock")
	ErrGPUUnavailable     = errors.New("gpu backend unavailable")
	ErrBackendUnknown     = errors.New("unknown render backend")
)

// Wrapf wraps err with a formatted message, preserving the original cause
// for errors.Is/errors.As while adding context for CLI/REST diagnostics.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
