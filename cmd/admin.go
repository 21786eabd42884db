/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/doctorchannel/apiserver/config"
	"github.com/doctorchannel/apiserver/internal/db"
	"github.com/doctorchannel/apiserver/internal/services"
	"github.com/doctorchannel/apiserver/internal/store"
	"github.com/spf13/cobra"
)

// adminCmd groups operational account commands.
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Operational account management",
}

// adminSetPasswordCmd resets an account's password and promotes it to
// ADMIN. Replaces the old habit of patching the users collection by hand.
var adminSetPasswordCmd = &cobra.Command{
	Use:   "set-password <email> <password>",
	Short: "Reset a user's password and promote the account to ADMIN",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password := args[0], args[1]
		cfg := config.LoadConfig()

		database, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() {
			_ = db.Close(database)
		}()

		userService := services.NewUserService(store.NewUserRepository(database))
		if err := userService.SetAdminPassword(cmd.Context(), email, password); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no account with email %s", email)
			}
			return err
		}

		fmt.Printf("password updated for %s (role ADMIN, active)\n", email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminSetPasswordCmd)
}
