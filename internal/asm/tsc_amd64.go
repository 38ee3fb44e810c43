// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build amd64

package asm

// HaveCounter reports that an invariant cycle counter is available.
const HaveCounter = true

// Rdtsc reads the CPU timestamp counter between serializing load fences,
// so out-of-order execution cannot straddle the measurement.
// Implemented in tsc_amd64.s.
//
//go:nosplit
//go:noescape
func Rdtsc() uint64
