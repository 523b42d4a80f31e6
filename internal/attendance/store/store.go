// Package store defines the persistence contracts for the attendance
// engine.  Implementations live in the sqlite (production) and memory
// (tests/dev) subpackages.
//
// The three mutations that carry invariants — CreateActive, BindDeviceIfUnset
// and CreateIfAbsent — must each be atomic against concurrent callers.
package store

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionActive   = errors.New("course already has an active session")
	ErrStudentNotFound = errors.New("student not found")
	ErrCourseNotFound  = errors.New("course not found")
	ErrUserNotFound    = errors.New("user not found")
)
