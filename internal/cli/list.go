package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List running sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := registryList()
			if err != nil {
				return err
			}
			for _, s := range sessions {
				attached := "detached"
				if s.Attached {
					attached = "attached"
				}
				fmt.Printf("%s\t%dx%d\t%s\t%s\n", s.ID, s.Cols, s.Rows, attached, s.Started.Format("2006-01-02T15:04:05Z"))
			}
			return nil
		},
	}
}
