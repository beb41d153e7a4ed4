//go:build !amd64

package msm

import "unsafe"

func prefetcht0(p unsafe.Pointer) {}
