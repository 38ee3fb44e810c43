// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !amd64

package asm

// HaveCounter reports that no invariant cycle counter is accessible on
// this architecture. Callers substitute the OS monotonic clock.
const HaveCounter = false

// Rdtsc is a stub for architectures without an accessible timestamp
// counter. Always returns 0.
func Rdtsc() uint64 {
	return 0
}
