package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminPassword string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the admin account",
}

var adminSetPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Create the admin account or replace its password",
	Long: `Create the admin account or replace its password.

The password may be given in plain text or as an existing bcrypt hash.
Nothing changes when the stored hash already matches.`,
	RunE: runAdminSetPassword,
}

func init() {
	adminSetPasswordCmd.Flags().StringVarP(&adminUsername, "username", "u", "admin", "admin username")
	adminSetPasswordCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "new password or bcrypt hash")
	adminCmd.AddCommand(adminSetPasswordCmd)
}

func runAdminSetPassword(cmd *cobra.Command, args []string) error {
	if adminPassword == "" {
		return errors.New("--password is required")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	created, err := a.services.EnsureAdmin(cmd.Context(), adminUsername, adminPassword)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %q\n", adminUsername)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "admin %q password set\n", adminUsername)
	}
	return nil
}
