// Package otp wraps Time-based One-Time Password (RFC 6238) secret
// generation, provisioning URIs and code computation for totpvault.
package otp
