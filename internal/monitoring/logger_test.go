package monitoring

import (
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) { called = true })
	Logf("test message")
	if !called {
		t.Error("custom logger was not called")
	}

	called = false
	SetLogger(nil)
	Logf("test message")
	if called {
		t.Error("no-op logger should not have triggered callback")
	}
}

func TestSetErrorLogger(t *testing.T) {
	original := Errorf
	defer func() { Errorf = original }()

	called := false
	SetErrorLogger(func(format string, v ...interface{}) { called = true })
	Errorf("skipped recording")
	if !called {
		t.Error("custom error logger was not called")
	}

	called = false
	SetErrorLogger(nil)
	Errorf("skipped recording")
	if called {
		t.Error("no-op error logger should not have triggered callback")
	}
}

func TestDefaultsNotNil(t *testing.T) {
	if Logf == nil {
		t.Error("Logf should not be nil by default")
	}
	if Errorf == nil {
		t.Error("Errorf should not be nil by default")
	}
}
