package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// validateChoiceFlag rejects flag values outside the allowed set.
func validateChoiceFlag(flags *pflag.FlagSet, name string, allowed ...string) error {
	value, err := flags.GetString(name)
	if err != nil {
		return err
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid --%s %q, must be one of: %s", name, value, strings.Join(allowed, ", "))
}
