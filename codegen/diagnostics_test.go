package codegen

import "testing"

func TestDiagnosticsHasErrors(t *testing.T) {
	var d Diagnostics
	if d.HasErrors() {
		t.Fatalf("HasErrors() = true on empty Diagnostics")
	}
	d.Warning("", "cosmetic")
	if d.HasErrors() {
		t.Fatalf("HasErrors() = true after only a warning")
	}
	d.Error("PSMain", "undefined texture")
	if !d.HasErrors() {
		t.Fatalf("HasErrors() = false after an error")
	}
}

func TestDiagnosticsRender(t *testing.T) {
	var d Diagnostics
	d.Error("PSMain", "undefined texture")
	d.Warning("", "unused uniform")

	got := d.Render()
	want := "error: in function PSMain: undefined texture\nwarning: unused uniform\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestDiagnosticsErrCombinesOnlyErrors(t *testing.T) {
	var d Diagnostics
	d.Warning("", "ignored")
	if err := d.Err(); err != nil {
		t.Fatalf("Err() = %v, want nil (warnings only)", err)
	}
	d.Error("", "boom")
	if err := d.Err(); err == nil {
		t.Fatalf("Err() = nil, want non-nil after an error")
	}
}
