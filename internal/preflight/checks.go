// Package preflight runs environment checks before a transcode starts.
package preflight

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

// DefaultMinFreeBytes is the free-space floor below which a transcode
// destination is flagged. Transcodes routinely produce multi-gigabyte
// output.
const DefaultMinFreeBytes = 2 << 30

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

var statfs = unix.Statfs

// CheckDiskSpace reports whether dir has at least minBytes available for
// writing. minBytes <= 0 applies DefaultMinFreeBytes.
func CheckDiskSpace(dir string, minBytes uint64) Result {
	const name = "Disk space"
	if minBytes == 0 {
		minBytes = DefaultMinFreeBytes
	}

	var st unix.Statfs_t
	if err := statfs(dir, &st); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("statfs %s: %v", dir, err)}
	}

	free := st.Bavail * uint64(st.Bsize)
	detail := fmt.Sprintf("%s free in %s", humanize.IBytes(free), dir)
	if free < minBytes {
		return Result{
			Name:   name,
			Detail: fmt.Sprintf("%s, below the %s floor", detail, humanize.IBytes(minBytes)),
		}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}
