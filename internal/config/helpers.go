package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Helpers shared by the sub-config Finalize implementations. Merge
// semantics: overlay wins only when non-zero. Env semantics: a set
// variable always wins.

func defaultString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func defaultInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

func mergeString(dst *string, overlay string) {
	if overlay != "" {
		*dst = overlay
	}
}

func mergeInt(dst *int, overlay int) {
	if overlay != 0 {
		*dst = overlay
	}
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func checkDuration(field, value string) error {
	if _, err := time.ParseDuration(value); err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	return nil
}
