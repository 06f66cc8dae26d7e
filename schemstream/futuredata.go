// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

// FutureData is a per-stream stack of "next expected end offset"
// checkpoints. Readers push the declared end offset of an outer record at
// entry and assert that the stream has reached exactly that offset at
// exit, per §4.4 and the §8 invariant "current_offset == declared_end".
type FutureData struct {
	ds    *DataStream
	stack []uint32
}

// NewFutureData binds a tracker to the stream it checkpoints against. One
// tracker exists per open stream and is reset (discarded) when the stream
// changes, per §5's "one FutureData stack (reset per stream)".
func NewFutureData(ds *DataStream) *FutureData {
	return &FutureData{ds: ds}
}

// Push records end as the next expected close offset for the record being
// entered.
func (f *FutureData) Push(end uint32) {
	f.stack = append(f.stack, end)
}

// Pop asserts the stream is positioned at the top-of-stack end offset and
// removes it. It is the mirror of Push at record exit.
func (f *FutureData) Pop() error {
	if len(f.stack) == 0 {
		return nil
	}
	top := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	if f.ds.CurrentOffset() != top {
		return &CheckpointMisaligned{ExpectedEnd: top, Actual: f.ds.CurrentOffset()}
	}
	return nil
}

// Depth reports how many checkpoints are currently open.
func (f *FutureData) Depth() int { return len(f.stack) }

// Checkpoint captures the current offset without popping, for readers that
// must choose between alternative optional trailers by comparing the
// remaining distance to the next declared boundary (§4.4, StructSthInPages0).
func (f *FutureData) Checkpoint() uint32 { return f.ds.CurrentOffset() }

// RemainingToTop returns declared-end-of-stack minus the current offset, or
// -1 if no checkpoint is open. A reader like StructSthInPages0 uses this to
// pick between "8-byte coordinate tail" (remaining == 8) and
// "skip-until-next-checkpoint" (anything else); see §9 open question (c).
func (f *FutureData) RemainingToTop() int64 {
	if len(f.stack) == 0 {
		return -1
	}
	top := f.stack[len(f.stack)-1]
	return int64(top) - int64(f.ds.CurrentOffset())
}

// ReadUntilNextFutureData advances the stream to the top-of-stack boundary
// without interpreting the skipped bytes, recording a labeled diagnostic so
// the unresolved tail is auditable, per §4.4.
func (f *FutureData) ReadUntilNextFutureData(label string) error {
	if len(f.stack) == 0 {
		return nil
	}
	top := f.stack[len(f.stack)-1]
	cur := f.ds.CurrentOffset()
	if top < cur {
		return &CheckpointMisaligned{ExpectedEnd: top, Actual: cur}
	}
	_, err := f.ds.PrintUnknown(top-cur, label)
	return err
}
