package memprobe

import (
	"errors"
	"testing"
)

func TestProcessProbe(t *testing.T) {
	probe := NewProcessProbe()

	rss, err := probe.RSSBytes()
	if err != nil {
		t.Fatalf("RSSBytes: %v", err)
	}
	if rss == 0 {
		t.Error("expected non-zero resident memory for a running process")
	}
}

func TestFixedProbe(t *testing.T) {
	probe := FixedProbe{Bytes: 4096}

	rss, err := probe.RSSBytes()
	if err != nil || rss != 4096 {
		t.Errorf("FixedProbe returned (%d, %v), want (4096, nil)", rss, err)
	}

	failing := FixedProbe{Err: errors.New("probe unavailable")}
	if _, err := failing.RSSBytes(); err == nil {
		t.Error("expected error from failing probe")
	}
}
