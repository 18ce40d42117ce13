package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrygo/aitime/plugin/aitime/accuracy"
)

func newLabelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "List accepted accuracy unit labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, label := range accuracy.Labels() {
				f, err := accuracy.ParseLabel(label)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-10s %-8s %d\n", label, f, uint16(f))
			}
			return nil
		},
	}
}
