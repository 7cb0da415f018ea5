package main

import (
	"errors"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"jobnotify-engine/internal/secrets"
)

var secretsPassword string

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Manage the remote store password in the OS keychain",
}

var secretsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the redis/postgres password in the keychain",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		pw := secretsPassword
		if pw == "" {
			pw, err = pterm.DefaultInteractiveTextInput.WithMask("*").Show("Store password")
			if err != nil {
				return err
			}
		}
		if strings.TrimSpace(pw) == "" {
			return errors.New("password is empty")
		}
		account := secrets.StoreKeyringAccount(cfg)
		if err := secrets.SetBackendPassword(account, pw); err != nil {
			return err
		}
		pterm.Success.Printfln("Password stored for %s", account)
		return nil
	},
}

var secretsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the store password from the keychain",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		account := secrets.StoreKeyringAccount(cfg)
		if err := secrets.DeleteBackendPassword(account); err != nil {
			return err
		}
		pterm.Success.Printfln("Password removed for %s", account)
		return nil
	},
}

func init() {
	secretsSetCmd.Flags().StringVar(&secretsPassword, "password", "", "Password (prompted when omitted)")
	secretsCmd.AddCommand(secretsSetCmd, secretsDeleteCmd)
	rootCmd.AddCommand(secretsCmd)
}
