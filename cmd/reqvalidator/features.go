package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func featuresCmd() *cobra.Command {
	var version int
	cmd := &cobra.Command{
		Use:   "features",
		Short: "List the known features of one requirements version, naturally sorted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if version < 1 {
				return fmt.Errorf("--version must be a positive integer")
			}
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			c, err := a.registry.Get(cmd.Context(), version)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "# version %d, %d rows, fingerprint %016x\n",
				c.Version(), c.Len(), c.Fingerprint())
			out := cmd.OutOrStdout()
			for _, f := range c.Features() {
				fmt.Fprintln(out, f)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&version, "version", 0, "requirements schema version")
	return cmd
}
