// Package platform selects the most efficient whole-file data copy
// available on the current OS, falling back to buffered read/write where
// kernel-assisted copies are unsupported.
package platform

import (
	"io"
	"os"
	"sync"
)

// CopyMethod identifies which syscall/strategy was used for a copy.
type CopyMethod int

const (
	ReadWrite     CopyMethod = iota
	CopyFileRange            // Linux copy_file_range(2)
	Sendfile                 // Linux sendfile(2)
)

func (m CopyMethod) String() string {
	switch m {
	case ReadWrite:
		return "read_write"
	case CopyFileRange:
		return "copy_file_range"
	case Sendfile:
		return "sendfile"
	default:
		return "unknown"
	}
}

// CopyResult reports the outcome of a copy operation.
type CopyResult struct {
	BytesWritten int64
	Method       CopyMethod
}

const bufferSize = 1 << 20 // 1 MiB

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, bufferSize)
		return &b
	},
}

// copyReadWrite copies data with a pooled buffer. Portable baseline used on
// every platform when the kernel-assisted paths are unavailable.
func copyReadWrite(srcPath string, dst *os.File) (CopyResult, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return CopyResult{}, err
	}
	defer src.Close()

	bufp := bufPool.Get().(*[]byte)
	defer bufPool.Put(bufp)

	n, err := io.CopyBuffer(dst, src, *bufp)
	return CopyResult{BytesWritten: n, Method: ReadWrite}, err
}
