// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package asm provides architecture-specific helpers for hot paths.
//
// The package exposes the CPU's invariant cycle counter where one is
// accessible (amd64 RDTSC). HaveCounter reports availability at compile
// time; on other architectures Rdtsc is a stub and callers fall back to
// the OS monotonic clock.
package asm
