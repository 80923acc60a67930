package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	appversion "github.com/sharksforarms/hatchet/internal/version"
)

// versionCmd prints build version information.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// No config or logger needed; skip the root PersistentPreRunE.
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error { return nil },
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(appversion.Full("hatchet"))
		},
	}
}
