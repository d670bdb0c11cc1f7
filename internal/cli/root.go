// Package cli implements panchangactl, a command line front end to the
// Panchanga service.
package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/vastr/panchanga/internal/domain/panchanga"
)

// ServiceFactory builds the service lazily so that --help stays fast.
type ServiceFactory func(ctx context.Context) (panchanga.Service, error)

// NewRootCommand returns the panchangactl command tree.
func NewRootCommand(factory ServiceFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "panchangactl",
		Short:         "Compute the five limbs of the Vedic day",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newComputeCmd(factory))
	root.AddCommand(newHistoryCmd(factory))
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
