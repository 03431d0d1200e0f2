// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/chiclet/internal/core/identity"
)

// NotBlank validates a value is non-empty after trimming whitespace.
func NotBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

// IdentityKey validates a persisted identity key. Keys are opaque but never
// blank and never carry surrounding whitespace, which the stores would keep
// verbatim and never match again.
func IdentityKey(key string) error {
	if err := NotBlank(key); err != nil {
		return err
	}
	if strings.TrimSpace(key) != key {
		return fmt.Errorf("identity %q has surrounding whitespace", key)
	}
	return nil
}

// Each runs fn over values and collects failures as field errors named
// field[i].
func Each(field string, values []string, fn func(string) error) error {
	var errs criterio.FieldErrorsBuilder
	for i, v := range values {
		if err := fn(v); err != nil {
			errs = errs.Append(fmt.Sprintf("%s[%d]", field, i), err)
		}
	}
	return errs.ToError()
}

// Identities validates every key of ids.
func Identities(field string, ids []identity.ID) error {
	return Each(field, identity.Strings(ids), IdentityKey)
}
