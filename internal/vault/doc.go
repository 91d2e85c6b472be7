// Package vault resolves the Fernet encryption key and encrypts/decrypts
// TOTP records to opaque tokens. Plaintext records never reach storage;
// the codec is the only place they exist outside memory of the caller.
package vault
