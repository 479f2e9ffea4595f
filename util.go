package scriptutil

import (
	"fmt"
	"strings"
)

func valueOrDefault[T any](ptr *T, def T) T {
	if ptr != nil {
		return *ptr
	}
	return def
}

func ptr[T any](v T) *T {
	return &v
}

// sprintfFlattened formats like fmt.Sprintf but collapses multi-line error
// arguments to a single display line.
func sprintfFlattened(format string, args ...any) string {
	for i, arg := range args {
		err, ok := arg.(error)
		if !ok {
			continue
		}
		args[i] = strings.ReplaceAll(err.Error(), "\n", "; ")
	}
	return fmt.Sprintf(format, args...)
}
