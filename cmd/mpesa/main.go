package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/c12i/mpesa-go/cmd/mpesa/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "mpesa",
	Short: "M-Pesa Daraja API CLI",
	Long: `A command-line interface for the Safaricom M-Pesa Daraja API.

This CLI covers the transactional API surface: STK push (M-Pesa Express),
B2C and B2B payments, C2B registration and simulation, account balance,
transaction status and reversal, and dynamic QR generation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.mpesa/config.yml)")
	rootCmd.PersistentFlags().StringP("environment", "e", "sandbox", "API environment (sandbox, production)")
	rootCmd.PersistentFlags().String("consumer-key", "", "Daraja app consumer key")
	rootCmd.PersistentFlags().String("consumer-secret", "", "Daraja app consumer secret")
	rootCmd.PersistentFlags().String("initiator-password", "", "initiator password for privileged operations")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	viper.BindPFlag("environment", rootCmd.PersistentFlags().Lookup("environment"))
	viper.BindPFlag("consumer_key", rootCmd.PersistentFlags().Lookup("consumer-key"))
	viper.BindPFlag("consumer_secret", rootCmd.PersistentFlags().Lookup("consumer-secret"))
	viper.BindPFlag("initiator_password", rootCmd.PersistentFlags().Lookup("initiator-password"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewTokenCommand())
	rootCmd.AddCommand(commands.NewExpressCommand())
	rootCmd.AddCommand(commands.NewB2CCommand())
	rootCmd.AddCommand(commands.NewB2BCommand())
	rootCmd.AddCommand(commands.NewC2BCommand())
	rootCmd.AddCommand(commands.NewBalanceCommand())
	rootCmd.AddCommand(commands.NewTransactionCommand())
	rootCmd.AddCommand(commands.NewQRCommand())
	rootCmd.AddCommand(commands.NewBillManagerCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Create config directory if it doesn't exist
		configDir := filepath.Join(home, ".mpesa")
		if err := os.MkdirAll(configDir, 0700); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		}

		// Search config in ~/.mpesa/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("MPESA")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
