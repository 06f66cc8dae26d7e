// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import "testing"

func TestDiagnosticsNotefAppends(t *testing.T) {
	var d Diagnostics
	d.Notef("reserved bits set at 0x%x", 0x10)
	d.Notef("unexpected %s", "value")
	if len(d.Notes) != 2 {
		t.Fatalf("Notes = %v; want 2 entries", d.Notes)
	}
	if d.Notes[0] != "reserved bits set at 0x10" {
		t.Fatalf("Notes[0] = %q", d.Notes[0])
	}
}

func TestDiagnosticsNotefNilReceiverIsNoop(t *testing.T) {
	var d *Diagnostics
	d.Notef("never stored")
}
