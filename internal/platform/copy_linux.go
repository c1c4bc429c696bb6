//go:build linux

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// CopyFile tries the most efficient copy method available on Linux,
// falling through on unsupported/cross-device errors.
func CopyFile(srcPath string, dst *os.File, size int64) (CopyResult, error) {
	if size > 0 {
		// Best-effort preallocation; not all filesystems support it.
		_ = unix.Fallocate(int(dst.Fd()), 0, 0, size)
	}

	result, err := copyFileRange(srcPath, dst, size)
	if err == nil {
		return result, nil
	}
	if !isFallbackErr(err) {
		return result, err
	}

	result, err = copySendfile(srcPath, dst, size)
	if err == nil {
		return result, nil
	}
	if !isFallbackErr(err) {
		return result, err
	}

	return copyReadWrite(srcPath, dst)
}

func copyFileRange(srcPath string, dst *os.File, size int64) (CopyResult, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return CopyResult{}, err
	}
	defer src.Close()

	remaining := size
	var roff, woff int64
	var total int64
	for remaining > 0 {
		n, err := unix.CopyFileRange(int(src.Fd()), &roff, int(dst.Fd()), &woff, int(remaining), 0)
		if err != nil {
			return CopyResult{BytesWritten: total, Method: CopyFileRange}, err
		}
		if n == 0 {
			break
		}
		remaining -= int64(n)
		total += int64(n)
	}

	return CopyResult{BytesWritten: total, Method: CopyFileRange}, nil
}

func copySendfile(srcPath string, dst *os.File, size int64) (CopyResult, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return CopyResult{}, err
	}
	defer src.Close()

	remaining := size
	var offset int64
	var total int64
	for remaining > 0 {
		n, err := unix.Sendfile(int(dst.Fd()), int(src.Fd()), &offset, int(remaining))
		if err != nil {
			return CopyResult{BytesWritten: total, Method: Sendfile}, err
		}
		if n == 0 {
			break
		}
		remaining -= int64(n)
		total += int64(n)
	}

	return CopyResult{BytesWritten: total, Method: Sendfile}, nil
}

// isFallbackErr returns true if err should trigger a fallback to the next
// copy strategy.
func isFallbackErr(err error) bool {
	switch err {
	case unix.ENOSYS, unix.EXDEV, unix.EINVAL, unix.ENOTSUP:
		return true
	}
	if e, ok := err.(*os.PathError); ok {
		return isFallbackErr(e.Err)
	}
	return false
}
