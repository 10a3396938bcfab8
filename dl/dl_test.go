//go:build darwin || freebsd || linux || netbsd

package dl

import (
	"errors"
	"testing"

	cabierrors "github.com/wippyai/cabi-host/errors"
)

func TestOpen_MissingLibrary(t *testing.T) {
	lib, err := Open("cabi-host-no-such-library-for-testing.so")
	if err == nil {
		if lib != nil {
			_ = lib.Close()
		}
		t.Fatal("expected an error for a library absent from the search path")
	}

	if !errors.Is(err, &cabierrors.Error{Phase: cabierrors.PhaseLoad, Kind: cabierrors.KindNotFound}) {
		t.Errorf("expected a load/not_found error, got %v", err)
	}

	var e *cabierrors.Error
	if !errors.As(err, &e) {
		t.Fatal("expected a structured error")
	}
	if e.Library != "cabi-host-no-such-library-for-testing.so" {
		t.Errorf("error does not name the library: %v", e)
	}
}
