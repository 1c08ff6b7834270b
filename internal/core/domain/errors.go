package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a catalog lookup missed.
var ErrNotFound = errors.New("domain: not found")

// ErrUnknownContentType indicates the classifier has no mapping for a
// content-type label and no default mood is configured.
var ErrUnknownContentType = errors.New("unknown content type")

// ErrNoMatchingTrack indicates the catalog holds zero usable tracks for the
// requested mood. This is fatal for the mixing request; the engine never
// substitutes a different mood.
var ErrNoMatchingTrack = errors.New("no matching track")

// ErrInvalidDuration indicates a target duration that is non-positive or
// below the minimum playable length.
var ErrInvalidDuration = errors.New("invalid target duration")

// ErrMalformedTimeline indicates a speech timeline with unsorted or
// overlapping intervals.
var ErrMalformedTimeline = errors.New("malformed speech timeline")

// UnknownContentTypeError carries the unmapped label.
type UnknownContentTypeError struct {
	ContentType string
}

func (e UnknownContentTypeError) Error() string {
	return fmt.Sprintf("unknown content type %q", e.ContentType)
}

func (e UnknownContentTypeError) Is(target error) bool {
	return target == ErrUnknownContentType
}

// NoMatchingTrackError carries the mood that had no candidates.
type NoMatchingTrackError struct {
	Mood Mood
}

func (e NoMatchingTrackError) Error() string {
	return fmt.Sprintf("no matching track for mood %q", e.Mood)
}

func (e NoMatchingTrackError) Is(target error) bool {
	return target == ErrNoMatchingTrack
}

// MalformedTimelineError identifies the offending interval.
type MalformedTimelineError struct {
	Index    int
	Interval SpeechInterval
	Reason   string
}

func (e MalformedTimelineError) Error() string {
	return fmt.Sprintf("malformed speech timeline: interval %d (%.2f–%.2f): %s",
		e.Index, e.Interval.Start, e.Interval.End, e.Reason)
}

func (e MalformedTimelineError) Is(target error) bool {
	return target == ErrMalformedTimeline
}
