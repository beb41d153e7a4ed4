package msm

import "unsafe"

// prefetcht0 hints the CPU to pull the cache line at p into all cache
// levels. The accumulator issues it one table entry ahead of use.
//
//go:noescape
func prefetcht0(p unsafe.Pointer)
