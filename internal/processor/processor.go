package processor

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fernet/fernet-go"

	"codeberg.org/snonux/totpvault/internal/cli"
	"codeberg.org/snonux/totpvault/internal/gui"
	"codeberg.org/snonux/totpvault/internal/otp"
	"codeberg.org/snonux/totpvault/internal/qr"
	"codeberg.org/snonux/totpvault/internal/store"
	"codeberg.org/snonux/totpvault/internal/vault"
)

// ANSI codes for status output
const (
	colorGreen   = "\033[1;32m"
	colorYellow  = "\033[1;33m"
	colorRed     = "\033[1;31m"
	colorInverse = "\033[7;32m"
	colorReset   = "\033[0m"
)

// Processor handles the main TOTP record processing logic
type Processor struct {
	flags *cli.Flags
	in    *bufio.Reader
}

// NewProcessor creates a new record processor
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{
		flags: flags,
		in:    bufio.NewReader(os.Stdin),
	}
}

// Enroll generates (or accepts via -m) a TOTP secret, presents its QR code
// and appends the encrypted record to the selected store.
func (p *Processor) Enroll(ctx context.Context) error {
	key, err := p.resolveKey()
	if err != nil {
		return err
	}

	account, err := p.flagOrPrompt(p.flags.Account, "Account")
	if err != nil {
		return err
	}
	issuer, err := p.flagOrPrompt(p.flags.Issuer, "Issuer")
	if err != nil {
		return err
	}

	gen := otp.NewGenerator(issuer)

	var secret, uri string
	if p.flags.ManualSecret != "" {
		secret, uri, err = gen.FromSecret(account, p.flags.ManualSecret)
	} else {
		secret, uri, err = gen.Generate(account)
	}
	if err != nil {
		return err
	}

	if err := p.present(issuer, account, uri); err != nil {
		return err
	}

	if p.flags.Verbose {
		fmt.Printf("Shared secret key:\t%s%s%s\n", colorYellow, secret, colorReset)
		fmt.Printf("QR code URI:\t\t%s%s%s\n", colorYellow, uri, colorReset)
	}

	if p.flags.QROutFile != "" {
		if err := p.saveQRBackup(uri); err != nil {
			return err
		}
	}

	token, err := vault.Encrypt(vault.Record{Service: issuer, Account: account, Secret: secret}, key)
	if err != nil {
		return err
	}

	st, err := p.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Append(token); err != nil {
		return err
	}

	if p.flags.TestCodes {
		return p.testLoop(ctx, gen, secret)
	}

	return nil
}

// List reads all stored records. With --decrypt each record is printed in
// plaintext; with --rebuild a QR code is rendered for each record so an
// authenticator app can be re-enrolled one scan after the other. A record
// that fails to decrypt is reported and skipped; the rest are processed.
func (p *Processor) List(_ context.Context) error {
	key, err := p.resolveKey()
	if err != nil {
		return err
	}

	st, err := p.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tokens, err := st.ReadAll()
	if err != nil {
		return err
	}

	var items []gui.Item
	for i, token := range tokens {
		rec, err := vault.Decrypt(token, key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%sRecord %d: %v, skipping%s\n", colorRed, i+1, err, colorReset)
			continue
		}

		if !p.flags.Rebuild {
			fmt.Printf("\n%sService:\t%s%s\n", colorGreen, colorReset, rec.Service)
			fmt.Printf("%sAccount:\t%s%s\n", colorGreen, colorReset, rec.Account)
			fmt.Printf("%sOTP secret key:\t%s%s\n", colorGreen, colorReset, rec.Secret)
			continue
		}

		gen := otp.NewGenerator(rec.Service)
		_, uri, err := gen.FromSecret(rec.Account, rec.Secret)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%sRecord %d: %v, skipping%s\n", colorRed, i+1, err, colorReset)
			continue
		}

		label := fmt.Sprintf("%s: %s", rec.Service, rec.Account)
		if p.flags.Window {
			items = append(items, gui.Item{Label: label, URI: uri})
			continue
		}

		ascii, err := qr.Terminal(uri)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s%s%s\n%s", colorGreen, label, colorReset, ascii)
	}

	if len(items) > 0 {
		return gui.Show(items)
	}

	return nil
}

// present shows the QR code for a freshly enrolled secret, either in a
// desktop window or on the terminal.
func (p *Processor) present(issuer, account, uri string) error {
	if p.flags.Window {
		return gui.Show([]gui.Item{{Label: fmt.Sprintf("%s: %s", issuer, account), URI: uri}})
	}

	ascii, err := qr.Terminal(uri)
	if err != nil {
		return err
	}
	fmt.Print(ascii)
	return nil
}

// saveQRBackup writes the QR code to the -o file without clobbering an
// existing one.
func (p *Processor) saveQRBackup(uri string) error {
	outPath, err := qr.WritePNG(uri, p.flags.QROutFile, qr.DefaultPNGSize)
	if err != nil {
		return err
	}

	requested := p.flags.QROutFile
	if !strings.HasSuffix(strings.ToLower(requested), ".png") {
		requested += ".png"
	}
	if outPath != requested {
		fmt.Printf("%sFile %s already exists, saved to %s%s\n", colorRed, requested, outPath, colorReset)
	}
	if p.flags.Verbose {
		fmt.Printf("Backup saved to:\t%s%s%s\n", colorYellow, outPath, colorReset)
	}

	return nil
}

// testLoop prints the currently valid code and the seconds remaining in
// its window, once a second, for manual cross-checking against a mobile
// authenticator. It runs until interrupted.
func (p *Processor) testLoop(ctx context.Context, gen *otp.Generator, secret string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("\n%sCompare the codes below against your authenticator app. Ctrl-C to stop.%s\n", colorInverse, colorReset)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		now := time.Now()
		code, err := gen.Code(secret, now)
		if err != nil {
			return err
		}
		fmt.Printf("\r%s%s%s  (%2d seconds remaining) ", colorGreen, code, colorReset, gen.Remaining(now))

		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case <-ticker.C:
		}
	}
}

// flagOrPrompt returns the flag value or asks for it interactively when
// the flag was not supplied.
func (p *Processor) flagOrPrompt(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}

	fmt.Printf("%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("%s must not be empty", strings.ToLower(label))
	}

	return line, nil
}

func (p *Processor) resolveKey() (*fernet.Key, error) {
	return vault.ResolveKey(p.flags.Key, p.flags.KeyFile, vault.EnvKeyName, !p.flags.NoKeygen)
}

func (p *Processor) openStore() (store.Store, error) {
	if p.flags.UseDB {
		return store.NewDBStore(p.flags.DBPath)
	}
	return store.NewFileStore(p.flags.StorePath), nil
}
