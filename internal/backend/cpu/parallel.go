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

// Package cpu is the CPU backend: data-parallel execution of pipeline
// stages over row or pixel chunks, the same bounded-semaphore shape as
// nightlight's internal/fits/pixelops.go ApplyPixelFunction.
package cpu

import (
	"runtime"
	"sync"

	"github.com/klauspost/cpuid"
)

// Workers returns the worker pool width this backend will use: the number
// of logical CPUs, reported alongside SIMD availability by `filmr version`.
func Workers() int {
	return runtime.NumCPU()
}

// HasAVX2 reports whether the host CPU exposes AVX2, surfaced for
// diagnostics only; no stage currently branches on it.
func HasAVX2() bool {
	return cpuid.CPU.AVX2()
}

// Parallel runs fn(i) for i in [0,n), one goroutine per i, bounded by a
// semaphore of width Workers() so no more than NumCPU() calls run at once.
func Parallel(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	numWorkers := Workers()
	if numWorkers > n {
		numWorkers = n
	}
	sem := make(chan bool, numWorkers)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- true
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(i)
		}(i)
	}
	wg.Wait()
}
