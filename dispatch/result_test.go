// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dispatch

import (
	"errors"
	"fmt"
	"testing"
)

func TestResultErr(t *testing.T) {
	if Success.Err() != nil {
		t.Error("Success.Err() should be nil")
	}
	if err := Suboptimal.Err(); err != Suboptimal {
		t.Errorf("Suboptimal.Err() = %v, want Suboptimal", err)
	}
	if Suboptimal.IsError() || !ErrorOutOfHostMemory.IsError() {
		t.Error("IsError() misclassifies codes")
	}
}

func TestResultOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   Result
		wantOK bool
	}{
		{"nil", nil, Success, true},
		{"direct", ErrorDeviceLost, ErrorDeviceLost, true},
		{"wrapped", fmt.Errorf("create: %w", ErrorOutOfHostMemory), ErrorOutOfHostMemory, true},
		{"foreign", errors.New("other"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResultOf(tt.err)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ResultOf() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResultString(t *testing.T) {
	if got := ErrorOutOfDate.Error(); got != "dispatch: out of date" {
		t.Errorf("Error() = %q", got)
	}
	if got := Result(-77).String(); got != "result(-77)" {
		t.Errorf("String() = %q", got)
	}
}
