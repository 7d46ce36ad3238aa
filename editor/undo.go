// Copyright (c) 2026, TrussPhoto Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

// UndoDepth is the maximum number of undo records kept; when it is
// exceeded the oldest record is discarded.
var UndoDepth = 50

// undoStack is a bounded stack of geometry snapshots. One record is
// pushed before every mutating operation (including pointer-down), so
// undo steps back one operation at a time.
type undoStack struct {
	recs []state
}

func (us *undoStack) push(s state) {
	us.recs = append(us.recs, s)
	if len(us.recs) > UndoDepth {
		us.recs = us.recs[len(us.recs)-UndoDepth:]
	}
}

func (us *undoStack) pop() (state, bool) {
	n := len(us.recs)
	if n == 0 {
		return state{}, false
	}
	s := us.recs[n-1]
	us.recs = us.recs[:n-1]
	return s, true
}

func (us *undoStack) reset() {
	us.recs = us.recs[:0]
}

func (us *undoStack) len() int {
	return len(us.recs)
}
