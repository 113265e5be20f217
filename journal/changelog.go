package journal

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	itypes "github.com/wcgcyx/journaldb/types"
)

const (
	defaultInitialCapacity = 1024
)

// changeLog is an append-only arena of changes addressed by position.
type changeLog struct {
	initialCapacity int
	changes         []itypes.Change
}

// newChangeLog creates a new change log.
func newChangeLog(initialCapacity int) *changeLog {
	if initialCapacity <= 0 {
		initialCapacity = defaultInitialCapacity
	}
	return &changeLog{
		initialCapacity: initialCapacity,
		changes:         make([]itypes.Change, 0, initialCapacity),
	}
}

// position gets the position of the last change.
func (l *changeLog) position() int {
	return len(l.changes) - 1
}

// capacity gets the allocated capacity.
func (l *changeLog) capacity() int {
	return cap(l.changes)
}

// append appends a change and returns its position.
func (l *changeLog) append(change itypes.Change) int {
	if len(l.changes) == cap(l.changes) {
		grown := make([]itypes.Change, len(l.changes), 2*cap(l.changes))
		copy(grown, l.changes)
		l.changes = grown
	}
	l.changes = append(l.changes, change)
	return len(l.changes) - 1
}

// at gets the change at given position.
func (l *changeLog) at(pos int) itypes.Change {
	return l.changes[pos]
}

// truncate drops every change after given position.
func (l *changeLog) truncate(pos int) {
	clear(l.changes[pos+1:])
	l.changes = l.changes[:pos+1]
}

// reset drops every change and shrinks back to the initial capacity.
func (l *changeLog) reset() {
	l.changes = make([]itypes.Change, 0, l.initialCapacity)
}
