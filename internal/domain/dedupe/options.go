package dedupe

import "strings"

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithCaseInsensitive treats "p101" and "P101" as the same ID.
func WithCaseInsensitive() Option {
	return func(d *inMemoryDeduper) {
		d.normalize = func(s string) string {
			return strings.ToUpper(strings.TrimSpace(s))
		}
	}
}
