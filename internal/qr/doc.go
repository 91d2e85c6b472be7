// Package qr renders TOTP provisioning URIs as QR codes: ASCII for the
// terminal, PNG bytes for the GUI and PNG files for backups.
package qr
