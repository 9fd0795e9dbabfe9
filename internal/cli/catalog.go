package cli

import (
	"fmt"

	"github.com/GriffinCanCode/PocketOS/internal/domain/catalog"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the merged app catalog as YAML",
		Long: `Loads the built-in apps plus any *.yaml/*.yml files under --dir and
prints the merged catalog. Use it to check custom app definitions before
serving them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.Load(contextOrBackground(cmd), dir)
			if err != nil {
				return err
			}
			out, err := c.Dump()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "directory of extra app definitions")

	var limit int
	search := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search apps by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(contextOrBackground(cmd), dir)
			if err != nil {
				return err
			}
			for _, app := range c.Search(args[0], limit) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", app.ID, app.DisplayName)
			}
			return nil
		},
	}
	search.Flags().IntVarP(&limit, "limit", "n", 10, "maximum results, 0 for all")
	cmd.AddCommand(search)
	return cmd
}
