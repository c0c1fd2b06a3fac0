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

package buffer

import "sync"

// pixelPools holds one sync.Pool per distinct W*H*3 pixel count, so
// same-size scratch buffers - the Gaussian blur's back buffer, grain's fine
// and coarse noise layers, halation's highlights buffer - can be reused
// across frames instead of round-tripping through the allocator on every
// call.
var pixelPools = struct {
	sync.RWMutex
	m map[int]*sync.Pool
}{m: make(map[int]*sync.Pool)}

func sizedPool(size int) *sync.Pool {
	pixelPools.RLock()
	pool := pixelPools.m[size]
	pixelPools.RUnlock()
	if pool != nil {
		return pool
	}

	pixelPools.Lock()
	defer pixelPools.Unlock()
	if pool = pixelPools.m[size]; pool != nil {
		return pool
	}
	pool = &sync.Pool{
		New: func() interface{} {
			return make([]float32, size)
		},
	}
	pixelPools.m[size] = pool
	return pool
}

// NewPooled returns a zeroed image whose backing array was recycled from
// the pool when available, falling back to a fresh allocation otherwise.
func NewPooled(w, h int) *Image {
	size := w * h * 3
	pix := sizedPool(size).Get().([]float32)
	for i := range pix {
		pix[i] = 0
	}
	return &Image{W: w, H: h, Pix: pix}
}

// Release returns img's backing array to its size-matched pool. img must
// not be used again after Release.
func Release(img *Image) {
	if img == nil || img.Pix == nil {
		return
	}
	sizedPool(cap(img.Pix)).Put(img.Pix[:cap(img.Pix)])
}

// ClearPools drops every pooled buffer, freeing their memory back to the
// runtime. Intended for long-running server processes between batches of
// differently sized jobs.
func ClearPools() {
	pixelPools.Lock()
	pixelPools.m = make(map[int]*sync.Pool)
	pixelPools.Unlock()
}
