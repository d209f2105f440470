package store

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
)

func newTestSlot(t *testing.T) (*FileSlot, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	slot, err := NewFileSlot(fs, "/data")
	if err != nil {
		t.Fatalf("NewFileSlot: %v", err)
	}
	return slot, fs
}

func TestFileSlotRoundTrip(t *testing.T) {
	slot, _ := newTestSlot(t)

	payload := []byte(`{"eventName":"Launch"}`)
	if err := slot.Write("plan.json", payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := slot.Read("plan.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Read = %s, want %s", got, payload)
	}
}

func TestFileSlotNotFound(t *testing.T) {
	slot, _ := newTestSlot(t)

	_, err := slot.Read("never-written.json")
	if !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("err = %v, want ErrSlotNotFound", err)
	}
}

func TestFileSlotDetectsTampering(t *testing.T) {
	slot, fs := newTestSlot(t)

	if err := slot.Write("plan.json", []byte("original")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := afero.WriteFile(fs, "/data/plan.json", []byte("tampered"), 0o644); err != nil {
		t.Fatalf("tamper: %v", err)
	}

	_, err := slot.Read("plan.json")
	if !errors.Is(err, ErrSlotCorrupt) {
		t.Errorf("err = %v, want ErrSlotCorrupt", err)
	}
}

func TestFileSlotAcceptsMissingChecksum(t *testing.T) {
	slot, fs := newTestSlot(t)

	// A file placed by hand, older tooling, or a restored backup has no
	// sidecar. It must still be readable.
	if err := afero.WriteFile(fs, "/data/plan.json", []byte("manual"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := slot.Read("plan.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "manual" {
		t.Errorf("Read = %s", got)
	}
}

func TestFileSlotOverwrite(t *testing.T) {
	slot, _ := newTestSlot(t)

	if err := slot.Write("plan.json", []byte("v1")); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := slot.Write("plan.json", []byte("v2")); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	got, err := slot.Read("plan.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "v2" {
		t.Errorf("Read = %s, want v2", got)
	}
}

func TestNewFileSlotRejectsEmptyDir(t *testing.T) {
	if _, err := NewFileSlot(afero.NewMemMapFs(), ""); err == nil {
		t.Error("empty directory should be rejected")
	}
}
