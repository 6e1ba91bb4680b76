package cli

import (
	"runtime"
	"testing"
)

func TestCurrentVersionInfo(t *testing.T) {
	info := currentVersionInfo()

	if info.Version == "" {
		t.Error("version should never be empty")
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("unexpected go version: %s", info.GoVersion)
	}
	if info.GOOS != runtime.GOOS || info.GOARCH != runtime.GOARCH {
		t.Errorf("unexpected platform: %s/%s", info.GOOS, info.GOARCH)
	}
}
