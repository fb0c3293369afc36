// Package logging provides the slog construction and attribute helpers used
// across the pipeline. The console handler renders compact single-line
// records; the JSON handler is for log shipping.
package logging
