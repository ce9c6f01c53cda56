package main

import (
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newDescribeCmd() *cobra.Command {
	var (
		f     schemaFlags
		depth int
	)
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the resolved shape tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shape, err := f.load(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(describeTree(shape, depth))
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&depth, "depth", 8, "maximum nesting depth to print (recursive shapes are cut here)")
	return cmd
}
