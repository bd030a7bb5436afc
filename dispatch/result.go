// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dispatch

import (
	"errors"
	"fmt"
)

// Result is a status code of the graphics API. Negative values are errors;
// positive values are non-error statuses such as Suboptimal.
//
// Result implements error so that a forwarded status travels back to the
// caller unchanged. Success is never returned as an error: operations
// return nil instead.
type Result int32

const (
	Success                   Result = 0
	NotReady                  Result = 1
	Timeout                   Result = 2
	Suboptimal                Result = 1000001003
	ErrorOutOfHostMemory      Result = -1
	ErrorOutOfDeviceMemory    Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost           Result = -4
	ErrorSurfaceLost          Result = -1000000000
	ErrorNativeWindowInUse    Result = -1000000001
	ErrorOutOfDate            Result = -1000001004
	ErrorIncompatibleDisplay  Result = -1000003001
)

var resultNames = map[Result]string{
	Success:                   "success",
	NotReady:                  "not ready",
	Timeout:                   "timeout",
	Suboptimal:                "suboptimal",
	ErrorOutOfHostMemory:      "out of host memory",
	ErrorOutOfDeviceMemory:    "out of device memory",
	ErrorInitializationFailed: "initialization failed",
	ErrorDeviceLost:           "device lost",
	ErrorSurfaceLost:          "surface lost",
	ErrorNativeWindowInUse:    "native window in use",
	ErrorOutOfDate:            "out of date",
	ErrorIncompatibleDisplay:  "incompatible display",
}

func (r Result) String() string {
	if s, ok := resultNames[r]; ok {
		return s
	}
	return fmt.Sprintf("result(%d)", int32(r))
}

func (r Result) Error() string {
	return "dispatch: " + r.String()
}

// IsError reports whether r is an error code.
func (r Result) IsError() bool {
	return r < 0
}

// Err returns nil for Success and r otherwise.
func (r Result) Err() error {
	if r == Success {
		return nil
	}
	return r
}

// ResultOf extracts the Result carried by err. A nil err is Success; an
// error that wraps no Result reports ok == false.
func ResultOf(err error) (r Result, ok bool) {
	if err == nil {
		return Success, true
	}
	if errors.As(err, &r) {
		return r, true
	}
	return 0, false
}
