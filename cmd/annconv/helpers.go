package main

import (
	"strings"
	"time"
)

// normalizeSuffix mirrors the configuration loader's suffix handling for
// values supplied on the command line: a non-empty suffix always carries a
// leading dot, an empty suffix stays empty.
func normalizeSuffix(suffix string) string {
	trimmed := strings.TrimSpace(suffix)
	if trimmed == "" || strings.HasPrefix(trimmed, ".") {
		return trimmed
	}
	return "." + trimmed
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
