package manifest_test

import (
	"testing"

	"github.com/goliatone/go-controlkit/pkg/manifest"
)

func TestControl_SemVer(t *testing.T) {
	cases := []struct {
		version string
		want    string
	}{
		{version: "1.2.0", want: "v1.2.0"},
		{version: "v2.0.1", want: "v2.0.1"},
		{version: "1.0", want: "v1.0.0"},
		{version: "latest", want: ""},
		{version: "", want: ""},
	}
	for _, tc := range cases {
		control := &manifest.Control{Version: tc.version}
		if got := control.SemVer(); got != tc.want {
			t.Fatalf("SemVer(%q) = %q, want %q", tc.version, got, tc.want)
		}
	}
}

func TestControl_VersionAtLeast(t *testing.T) {
	control := &manifest.Control{Version: "1.2.0"}
	if !control.VersionAtLeast("1.1.9") {
		t.Fatalf("1.2.0 should satisfy 1.1.9")
	}
	if !control.VersionAtLeast("v1.2.0") {
		t.Fatalf("versions should compare equal")
	}
	if control.VersionAtLeast("1.10.0") {
		t.Fatalf("1.2.0 must not satisfy 1.10.0")
	}
	if control.VersionAtLeast("soon") {
		t.Fatalf("invalid floor should not match")
	}
	if (&manifest.Control{Version: "dev"}).VersionAtLeast("0.0.1") {
		t.Fatalf("invalid version should not match")
	}
}
