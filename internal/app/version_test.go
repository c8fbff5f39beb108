package app

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
)

func TestHasVersionFlag(t *testing.T) {
	testCases := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"-digits", "100"}, false},
		{[]string{"--version"}, true},
		{[]string{"-version"}, true},
		{[]string{"-V"}, true},
		{[]string{"-digits", "100", "--version"}, true},
		{[]string{"-v"}, false}, // verbose, not version
	}
	for _, tc := range testCases {
		if got := HasVersionFlag(tc.args); got != tc.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tc.args, got, tc.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf)

	out := buf.String()
	for _, want := range []string{"superpi " + Version, Commit, runtime.Version(), runtime.GOOS} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	if info.Version != Version || info.Commit != Commit {
		t.Errorf("info = %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}
}
