package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rushi-salon/salon/internal/app"
	"github.com/rushi-salon/salon/internal/auth"
	"github.com/rushi-salon/salon/internal/platform/db"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage staff accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a staff account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")

		ctx := cmd.Context()
		cfg, err := app.LoadStoreConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := db.EnsureSchema(ctx, pool); err != nil {
			return err
		}

		user, err := auth.NewService(auth.NewRepository(pool)).CreateUser(ctx, auth.CreateUserRequest{
			Username: username,
			Password: password,
			Role:     role,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "User %s created (%s)\n", user.Username, user.Role)
		return nil
	},
}

func init() {
	userAddCmd.Flags().String("username", "", "login name")
	userAddCmd.Flags().String("password", "", "password, at least 6 characters")
	userAddCmd.Flags().String("role", auth.RoleAdmin, "account role")
	_ = userAddCmd.MarkFlagRequired("username")
	_ = userAddCmd.MarkFlagRequired("password")
	userCmd.AddCommand(userAddCmd)
}
