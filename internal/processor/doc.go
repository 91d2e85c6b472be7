// Package processor implements the main enrollment and listing logic:
// resolve the encryption key, generate or accept a TOTP secret, present
// its QR code, persist the encrypted record, and read records back.
package processor
