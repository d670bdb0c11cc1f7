package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vastr/panchanga/internal/domain/panchanga"
)

func newComputeCmd(factory ServiceFactory) *cobra.Command {
	var (
		req       panchanga.Request
		elevation float64
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute vara, tithi, nakshatra, yoga and karana at an instant and place",
		Example: `  panchangactl compute --lat 51.4769 --lon -0.0005 --datetime 2025-03-28T14:00:00Z
  panchangactl compute --lat 28.6139 --lon 77.2090 --datetime "2025-03-28 06:30" --tz Asia/Kolkata`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("elevation") {
				req.Elevation = &elevation
			}
			svc, err := factory(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize service: %w", err)
			}
			resp, err := svc.Compute(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			renderResponse(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Datetime, "datetime", "", "RFC3339 or local \"2006-01-02 15:04\" time (default: now)")
	cmd.Flags().Float64Var(&req.Latitude, "lat", 0, "latitude in degrees, north positive")
	cmd.Flags().Float64Var(&req.Longitude, "lon", 0, "longitude in degrees, east positive")
	cmd.Flags().StringVar(&req.Timezone, "tz", "", "IANA timezone (default: looked up from coordinates)")
	cmd.Flags().Float64Var(&elevation, "elevation", 0, "observer elevation in metres")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full JSON response")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}

func newHistoryCmd(factory ServiceFactory) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent computations",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := factory(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize service: %w", err)
			}
			entries, err := svc.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			renderHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of entries (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func itoa(n int) string { return strconv.Itoa(n) }

func fprintln(w io.Writer, s string) { _, _ = fmt.Fprintln(w, s) }
