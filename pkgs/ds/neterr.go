package ds

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

// isConnRefused reports whether err is the OS surfacing an ICMP
// port-unreachable for a prior UDP datagram — the portable signal that
// nothing is bound on the receiving end at the target address.
func isConnRefused(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == unix.ECONNREFUSED
	}
	return false
}
