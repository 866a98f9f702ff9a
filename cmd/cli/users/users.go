package users

import (
	"fmt"
	"strconv"

	"github.com/crucial707/user-api/cmd/cli/client"
	"github.com/crucial707/user-api/cmd/cli/output"
	"github.com/crucial707/user-api/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// CLI Command Init
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user records",
		Long:  "Create, list, show, update and delete users. Requires a token from `usersctl login`.",
	}

	usersCmd.AddCommand(
		listUsersCmd(),
		getUserCmd(),
		createUserCmd(),
		updateUserCmd(),
		deleteUserCmd(),
	)

	rootCmd.AddCommand(usersCmd)
}

// ==========================
// LIST
// ==========================
func listUsersCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			var users []models.User
			if err := client.Call("GET", "/users", true, nil, &users); err != nil {
				return err
			}

			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), users)
			}

			rows := make([][]interface{}, 0, len(users))
			for _, u := range users {
				rows = append(rows, []interface{}{u.ID, u.Name, u.Email})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Email"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	return cmd
}

// ==========================
// GET
// ==========================
func getUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var user models.User
			if err := client.Call("GET", "/users/"+strconv.Itoa(id), true, nil, &user); err != nil {
				return err
			}
			printUser(cmd, user)
			return nil
		},
	}
}

// ==========================
// CREATE
// ==========================
func createUserCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"name": name, "email": email, "password": password}

			var user models.User
			if err := client.Call("POST", "/users", true, payload, &user); err != nil {
				return err
			}
			printUser(cmd, user)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (unique)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (unique)")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateUserCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update any of a user's name, email or password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			// Only flags the caller set are sent, so the rest stay unchanged.
			payload := map[string]string{}
			if cmd.Flags().Changed("name") {
				payload["name"] = name
			}
			if cmd.Flags().Changed("email") {
				payload["email"] = email
			}
			if cmd.Flags().Changed("password") {
				payload["password"] = password
			}
			if len(payload) == 0 {
				return fmt.Errorf("nothing to update: pass --name, --email or --password")
			}

			var user models.User
			if err := client.Call("PUT", "/users/"+strconv.Itoa(id), true, payload, &user); err != nil {
				return err
			}
			printUser(cmd, user)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&email, "email", "", "New email address")
	cmd.Flags().StringVar(&password, "password", "", "New password")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var out struct {
				Message string `json:"message"`
			}
			if err := client.Call("DELETE", "/users/"+strconv.Itoa(id), true, nil, &out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			return nil
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}

func printUser(cmd *cobra.Command, u models.User) {
	output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Email"}, [][]interface{}{{u.ID, u.Name, u.Email}})
}
