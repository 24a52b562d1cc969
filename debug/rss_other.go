//go:build !windows

package debug

import "errors"

var errRSSUnsupported = errors.New("rss query not implemented on this platform")

func residentSetSize() (uint64, error) { return 0, errRSSUnsupported }
