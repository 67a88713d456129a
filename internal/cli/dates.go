package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func parseDate(field, v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: expected YYYY-MM-DD, got %q", field, v)
	}
	return t, nil
}

func parseOptionalDate(field, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := parseDate(field, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// asOfFlag reads --as-of, defaulting to the current UTC time.
func asOfFlag(cmd *cobra.Command) (time.Time, error) {
	v, _ := cmd.Flags().GetString("as-of")
	if v == "" {
		return time.Now().UTC(), nil
	}
	return parseDate("as-of", v)
}
