package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.BuildTag != Version {
		t.Errorf("BuildTag = %q, want %q", info.BuildTag, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
}

func TestString(t *testing.T) {
	s := Info{BuildTag: "v1.2.3", Platform: "linux amd64", SQLite: "v1.0.0"}.String()
	for _, want := range []string{"Build Tag:    v1.2.3", "Platform:     linux amd64", "SQLite:       v1.0.0"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}

	if strings.Contains(Info{}.String(), "SQLite") {
		t.Error("String() prints SQLite line when driver version is empty")
	}
}
