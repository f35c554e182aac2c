package ds

import "errors"

// errDecodeUnderrun wraps errors produced when an inbound buffer runs out
// before a fixed-size field finishes decoding.
var errDecodeUnderrun = errors.New("buffer underrun")
