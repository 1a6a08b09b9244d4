package errorreporter

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lumenquant/reactor/pkg/logging"
)

func newTestReporter(interval time.Duration) (*Reporter, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := logging.New(logging.Config{Level: "warn", Output: buf})
	return New(interval, logger), buf
}

func TestReport_FirstCallAlwaysLogs(t *testing.T) {
	r, buf := newTestReporter(time.Hour)
	logged := r.Report("operator failed", errors.New("boom"))
	if !logged {
		t.Fatal("first Report() should log")
	}
	if !strings.Contains(buf.String(), "operator failed") {
		t.Errorf("expected log output, got: %s", buf.String())
	}
}

func TestReport_SuppressesWithinInterval(t *testing.T) {
	r, buf := newTestReporter(time.Hour)
	r.Report("first", errors.New("e1"))
	buf.Reset()

	logged := r.Report("second", errors.New("e2"))
	if logged {
		t.Fatal("Report() within interval should be suppressed")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no log output, got: %s", buf.String())
	}
}

func TestIsOpen(t *testing.T) {
	r, _ := newTestReporter(time.Hour)
	if r.IsOpen() {
		t.Fatal("IsOpen() should be false before any report")
	}
	r.Report("first", errors.New("e1"))
	if !r.IsOpen() {
		t.Fatal("IsOpen() should be true immediately after a report, within the cooldown")
	}
}

func TestReport_LogsAgainAfterIntervalElapses(t *testing.T) {
	r, buf := newTestReporter(time.Millisecond)
	r.Report("first", errors.New("e1"))
	time.Sleep(5 * time.Millisecond)
	buf.Reset()

	logged := r.Report("second", errors.New("e2"))
	if !logged {
		t.Fatal("Report() after interval elapses should log")
	}
}
