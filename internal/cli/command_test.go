package cli

import (
	"testing"
)

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	if cmd == nil {
		t.Fatal("CreateRootCommand returned nil")
	}

	if cmd.Use != "totpvault" {
		t.Errorf("Use = %q, want %q", cmd.Use, "totpvault")
	}

	// Every documented flag must be registered
	flagNames := []string{
		"account", "issuer", "manual", "qr-out", "test",
		"db", "decrypt", "rebuild", "verbose",
		"key", "key-file", "no-keygen",
		"window", "store", "db-path",
	}

	for _, name := range flagNames {
		t.Run("has_flag_"+name, func(t *testing.T) {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("root command missing flag: %s", name)
			}
		})
	}

	if cmd.PersistentFlags().Lookup("config") == nil {
		t.Error("root command missing persistent flag: config")
	}
}

func TestRootCommandShorthands(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	shorthands := map[string]string{
		"account": "a",
		"issuer":  "i",
		"manual":  "m",
		"qr-out":  "o",
		"test":    "t",
	}

	for name, short := range shorthands {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			t.Fatalf("missing flag %s", name)
		}
		if f.Shorthand != short {
			t.Errorf("flag %s shorthand = %q, want %q", name, f.Shorthand, short)
		}
	}
}

func TestRootCommandFlagParsing(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	if err := cmd.ParseFlags([]string{"-a", "leif.gregory", "-i", "DevTek.org", "--db", "--verbose"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if flags.Account != "leif.gregory" {
		t.Errorf("Account = %q, want %q", flags.Account, "leif.gregory")
	}
	if flags.Issuer != "DevTek.org" {
		t.Errorf("Issuer = %q, want %q", flags.Issuer, "DevTek.org")
	}
	if !flags.UseDB {
		t.Error("UseDB = false, want true")
	}
	if !flags.Verbose {
		t.Error("Verbose = false, want true")
	}
}
