package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/aitime/internal/timezone"
	"github.com/hrygo/aitime/plugin/aitime"
	"github.com/hrygo/aitime/plugin/aitime/accuracy"
)

type parseOutput struct {
	Input    string    `json:"input"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Accuracy uint16    `json:"accuracy"`
	Fields   string    `json:"fields"`
	DateTime int       `json:"date_time_flag"`
	HasDate  bool      `json:"has_date"`
	HasTime  bool      `json:"has_time"`
}

func newParseCmd(v *viper.Viper) *cobra.Command {
	var outputJSON bool
	var ref string

	cmd := &cobra.Command{
		Use:   "parse <expr>...",
		Short: "Parse one or more time expressions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProfile(v)
			if err != nil {
				return err
			}
			loc, err := timezone.Parse(p.Timezone)
			if err != nil {
				return err
			}

			reference := time.Now().In(loc)
			if ref != "" {
				reference, err = time.ParseInLocation(time.RFC3339, ref, loc)
				if err != nil {
					return errors.Wrap(err, "parse --ref")
				}
			}

			logger := p.NewLogger(cmd.ErrOrStderr())
			svc := aitime.NewService(p.Timezone, aitime.WithLogger(logger), aitime.WithBatchLimit(p.BatchLimit))

			ranges, err := svc.ParseBatch(cmd.Context(), args, reference)
			if err != nil {
				return err
			}

			results := make([]parseOutput, len(args))
			for i, tr := range ranges {
				results[i] = newParseOutput(args[i], tr)
			}
			if outputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			return writeText(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "write results as JSON")
	cmd.Flags().StringVar(&ref, "ref", "", "reference time (RFC3339), defaults to now")
	return cmd
}

func newParseOutput(input string, tr aitime.TimeRange) parseOutput {
	ctx := accuracy.NewContext(tr.Accuracy)
	return parseOutput{
		Input:    input,
		Start:    tr.Start,
		End:      tr.End,
		Accuracy: uint16(tr.Accuracy),
		Fields:   tr.Accuracy.String(),
		DateTime: ctx.DateTimeFlag(),
		HasDate:  ctx.HasDate(),
		HasTime:  ctx.HasTime(),
	}
}

func writeText(w io.Writer, results []parseOutput) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			r.Input, r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339), r.Fields); err != nil {
			return err
		}
	}
	return nil
}
