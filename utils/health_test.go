package utils

import "testing"

func TestHealthSnapshotReflectsLastCheck(t *testing.T) {
	recordHealth(true, false, true)

	got := GetHealthStatus()
	if !got.Mongo || got.ProfileCache || !got.AuthCache {
		t.Errorf("snapshot = %+v, want mongo and auth cache healthy, profile cache down", got)
	}
	if got.CheckedAt.IsZero() {
		t.Error("CheckedAt not stamped")
	}

	recordHealth(false, true, true)
	if got := GetHealthStatus(); got.Mongo {
		t.Errorf("snapshot = %+v, want mongo reported down after latest check", got)
	}
}
