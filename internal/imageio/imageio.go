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

// Package imageio is the boundary between encoded image bytes and the
// pipeline's buffer.Image: decode on the way in, encode on the way out.
// Not part of the simulation core itself (kept out of internal/pipeline
// per spec, same as nightlight keeps file I/O out of internal/fits'
// numeric core).
package imageio

import (
	"bufio"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/mlnoga/filmr/internal/buffer"
	"github.com/mlnoga/filmr/internal/filmrerr"
)

// Format identifies a supported container on disk.
type Format string

const (
	PNG Format = "png"
	JPEG Format = "jpeg"
	BMP Format = "bmp"
)

// FormatForPath infers a Format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".bmp":
		return BMP, nil
	default:
		return "", filmrerr.Wrapf(filmrerr.ErrUnsupportedFormat, "%s", path)
	}
}

// Decode reads an sRGB byte image from r in the given format and converts
// it to a buffer.Image ready for the Linearize stage.
func Decode(r io.Reader, format Format) (*buffer.Image, error) {
	img, err := decodeFormat(r, format)
	if err != nil {
		return nil, filmrerr.Wrapf(err, "decoding %s", format)
	}
	return buffer.FromNRGBA(img), nil
}

func decodeFormat(r io.Reader, format Format) (image.Image, error) {
	switch format {
	case PNG:
		return png.Decode(r)
	case JPEG:
		return jpeg.Decode(r)
	case BMP:
		return bmp.Decode(r)
	default:
		return nil, filmrerr.Wrapf(filmrerr.ErrUnsupportedFormat, "%s", format)
	}
}

// DecodeFile opens path and decodes it per FormatForPath.
func DecodeFile(path string) (*buffer.Image, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, filmrerr.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	return Decode(bufio.NewReader(f), format)
}

// Encode writes img to w in the given format, after the Output stage has
// converted density back to sRGB bytes.
func Encode(w io.Writer, img *buffer.Image, format Format, jpegQuality int) error {
	nrgba := img.ToNRGBA()
	switch format {
	case PNG:
		return png.Encode(w, nrgba)
	case JPEG:
		if jpegQuality <= 0 {
			jpegQuality = 92
		}
		return jpeg.Encode(w, nrgba, &jpeg.Options{Quality: jpegQuality})
	case BMP:
		return bmp.Encode(w, nrgba)
	default:
		return filmrerr.Wrapf(filmrerr.ErrUnsupportedFormat, "%s", format)
	}
}

// EncodeFile creates path and encodes img into it per FormatForPath.
func EncodeFile(path string, img *buffer.Image, jpegQuality int) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return filmrerr.Wrapf(err, "creating %s", path)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := Encode(w, img, format, jpegQuality); err != nil {
		return err
	}
	return w.Flush()
}
