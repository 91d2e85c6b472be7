package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/totpvault/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "totpvault",
		Short: "Encrypted TOTP secret manager",
		Long: `totpvault generates TOTP shared secrets, renders them as scannable
QR codes and stores them Fernet-encrypted in a text file or a local
SQLite database.

Examples:
  totpvault -a leif.gregory -i DevTek.org   # Enroll a new TOTP secret
  totpvault -m JBSWY3DPEHPK3PXP -a me -i x  # Enroll an existing secret
  totpvault --decrypt                       # Show all stored records
  totpvault --rebuild                       # QR code for every record
  totpvault -a me -i x -t                   # Verify codes against your app`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.totpvault.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Account, "account", "a", "", "User account the TOTP is for")
	cmd.Flags().StringVarP(&flags.Issuer, "issuer", "i", "", "Application or site the TOTP is for")
	cmd.Flags().StringVarP(&flags.ManualSecret, "manual", "m", "", "Manually enter an existing base32 TOTP shared secret")
	cmd.Flags().StringVarP(&flags.QROutFile, "qr-out", "o", "", "Save the QR code to a PNG file")
	cmd.Flags().BoolVarP(&flags.TestCodes, "test", "t", false, "Loop printing live codes to verify against an authenticator app")
	cmd.Flags().BoolVar(&flags.UseDB, "db", false, "Store or read TOTP records from SQLite instead of the text file")
	cmd.Flags().BoolVar(&flags.Decrypt, "decrypt", false, "Display all stored TOTP records decrypted")
	cmd.Flags().BoolVar(&flags.Rebuild, "rebuild", false, "Display a QR code for every stored record to rebuild an authenticator app")
	cmd.Flags().BoolVar(&flags.Verbose, "verbose", false, "Show the generated secret and provisioning URI")
	cmd.Flags().StringVar(&flags.Key, "key", "", "Fernet encryption/decryption key")
	cmd.Flags().StringVar(&flags.KeyFile, "key-file", flags.KeyFile, "File holding the Fernet key")
	cmd.Flags().BoolVar(&flags.NoKeygen, "no-keygen", false, "Fail instead of generating a key when none is found")
	cmd.Flags().BoolVar(&flags.Window, "window", false, "Display the QR code in a desktop window instead of the terminal")
	cmd.Flags().StringVar(&flags.StorePath, "store", flags.StorePath, "Path of the encrypted record file")
	cmd.Flags().StringVar(&flags.DBPath, "db-path", flags.DBPath, "Path of the SQLite database (with --db)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("storage.file", cmd.Flags().Lookup("store"))
	viper.BindPFlag("storage.db_path", cmd.Flags().Lookup("db-path"))
	viper.BindPFlag("storage.use_db", cmd.Flags().Lookup("db"))
	viper.BindPFlag("encryption.key_file", cmd.Flags().Lookup("key-file"))
	viper.BindPFlag("otp.issuer", cmd.Flags().Lookup("issuer"))
}

// ApplyConfig fills flag values from the config file for flags the user
// did not set explicitly on the command line.
func ApplyConfig(cmd *cobra.Command, flags *Flags) {
	if !cmd.Flags().Changed("store") {
		if v := viper.GetString("storage.file"); v != "" {
			flags.StorePath = v
		}
	}
	if !cmd.Flags().Changed("db-path") {
		if v := viper.GetString("storage.db_path"); v != "" {
			flags.DBPath = v
		}
	}
	if !cmd.Flags().Changed("db") && viper.IsSet("storage.use_db") {
		flags.UseDB = viper.GetBool("storage.use_db")
	}
	if !cmd.Flags().Changed("key-file") {
		if v := viper.GetString("encryption.key_file"); v != "" {
			flags.KeyFile = v
		}
	}
	if !cmd.Flags().Changed("issuer") && flags.Issuer == "" {
		flags.Issuer = viper.GetString("otp.issuer")
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".totpvault" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".totpvault")
	}

	// Environment variables
	viper.SetEnvPrefix("TOTPVAULT")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
