package platform

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestChmod(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "test.txt")
	if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(path, 0600); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("permissions = %o, want %o", perm, 0600)
		}
	}
}

func TestChmodDir(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "secure")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(dir, 0700); err != nil {
		t.Fatalf("Chmod on dir failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0700 {
			t.Errorf("permissions = %o, want %o", perm, 0700)
		}
	}
}

func TestInspectTarget(t *testing.T) {
	tmp := t.TempDir()

	empty := filepath.Join(tmp, "empty")
	if err := os.Mkdir(empty, DirMode); err != nil {
		t.Fatal(err)
	}
	full := filepath.Join(tmp, "full")
	if err := os.Mkdir(full, DirMode); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(full, "a"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(tmp, "file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want TargetState
	}{
		{filepath.Join(tmp, "absent"), TargetMissing},
		{empty, TargetEmptyDir},
		{full, TargetNonEmptyDir},
		{file, TargetFile},
	}
	for _, tt := range tests {
		got, err := InspectTarget(tt.path)
		if err != nil {
			t.Fatalf("InspectTarget(%s) error: %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("InspectTarget(%s) = %v, want %v", filepath.Base(tt.path), got, tt.want)
		}
	}
}

func TestShellCommand(t *testing.T) {
	cmd := ShellCommand(context.Background(), "echo hi")
	if runtime.GOOS == "windows" {
		if cmd.Args[len(cmd.Args)-2] != "/C" {
			t.Errorf("Args = %v", cmd.Args)
		}
		return
	}
	want := []string{"sh", "-c", "echo hi"}
	if len(cmd.Args) != 3 || cmd.Args[0] != want[0] || cmd.Args[1] != want[1] || cmd.Args[2] != want[2] {
		t.Errorf("Args = %v, want %v", cmd.Args, want)
	}
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("running shell: %v", err)
	}
	if string(out) != "hi\n" {
		t.Errorf("output = %q, want %q", out, "hi\n")
	}
}
