package root

import (
	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:           "usersctl",
	Short:         "User API CLI",
	Long:          "Command line interface for the user CRUD API. Log in once, then manage users with the stored token.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// GetRoot returns the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}
