// Package logging builds the zerolog loggers used across postdeck and carries
// them, together with a per-invocation trace id, through context.Context.
//
// Output goes to stderr in console or JSON format, or to a file. The
// interactive browser always logs to a file because stderr belongs to the
// terminal UI; when the file cannot be opened NewLoggerWithPath falls back to
// a discarding logger and reports why.
package logging
