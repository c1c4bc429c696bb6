//go:build !linux

package platform

import "os"

// CopyFile falls back to buffered read/write on platforms without a
// kernel-assisted copy path.
func CopyFile(srcPath string, dst *os.File, size int64) (CopyResult, error) {
	_ = size
	return copyReadWrite(srcPath, dst)
}
