// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import "fmt"

// Diagnostics accumulates free-text notes raised while parsing a stream:
// unobserved-but-accepted field values, and other observations that do not
// rise to the level of an error. This is the Go-domain reshaping of the
// teacher's File.Anomalies []string accumulator in anomaly.go, generalized
// from PE-specific anomaly strings to EDA stream-parsing notes.
type Diagnostics struct {
	Notes []string
}

// Notef appends a formatted note.
func (d *Diagnostics) Notef(format string, args ...interface{}) {
	if d == nil {
		return
	}
	d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
}
