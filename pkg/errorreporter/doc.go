// Package errorreporter implements a rate-limited error reporter used
// inside user-supplied operators to avoid log flooding.
//
// # Overview
//
// A Reporter is configured with a minimum inter-log interval. Report
// logs a message only if at least that interval has elapsed since the
// last log; IsOpen reports whether the reporter is still within its
// cooldown window, letting a caller short-circuit to a cheap sentinel
// (e.g. NaN) instead of repeating expensive failing work.
package errorreporter
