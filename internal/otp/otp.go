package otp

import (
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// Generator creates TOTP secrets, provisioning URIs and codes for one issuer.
type Generator struct {
	issuer string
	period uint
	skew   uint
	digits otp.Digits
}

// NewGenerator constructs a Generator with the common TOTP parameters:
// 30-second period, 6 digits, SHA1.
func NewGenerator(issuer string) *Generator {
	return &Generator{
		issuer: issuer,
		period: 30,
		skew:   1,
		digits: otp.DigitsSix,
	}
}

// Generate creates a fresh shared secret and its provisioning URI for an
// account name.
func (g *Generator) Generate(account string) (secret, uri string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      g.issuer,
		AccountName: account,
		Period:      g.period,
		SecretSize:  20, // RFC 4226/6238 recommendation
		Digits:      g.digits,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate TOTP secret: %w", err)
	}

	return key.Secret(), key.URL(), nil
}

// FromSecret builds a provisioning URI for an already existing base32 shared
// secret, as entered with the -m flag. It returns the normalized secret and
// the URI.
func (g *Generator) FromSecret(account, manualSecret string) (secret, uri string, err error) {
	raw, err := decodeBase32Secret(manualSecret)
	if err != nil {
		return "", "", err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      g.issuer,
		AccountName: account,
		Period:      g.period,
		Secret:      raw,
		Digits:      g.digits,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to build provisioning URI: %w", err)
	}

	return key.Secret(), key.URL(), nil
}

// Code computes the TOTP code for a secret at the given time.
func (g *Generator) Code(secret string, at time.Time) (string, error) {
	code, err := totp.GenerateCodeCustom(secret, at, totp.ValidateOpts{
		Period:    g.period,
		Skew:      g.skew,
		Digits:    g.digits,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to compute TOTP code: %w", err)
	}
	return code, nil
}

// Validate checks whether a code is valid for the secret at the given time.
func (g *Generator) Validate(code, secret string, at time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    g.period,
		Skew:      g.skew,
		Digits:    g.digits,
		Algorithm: otp.AlgorithmSHA1,
	})
	return ok && err == nil
}

// Remaining returns the seconds left in the validity window at the given time.
func (g *Generator) Remaining(at time.Time) int {
	return int(g.period) - int(at.Unix()%int64(g.period))
}

// decodeBase32Secret normalizes and decodes a user-supplied base32 secret.
// Authenticator secrets are commonly printed in lowercase or grouped with
// spaces, and may or may not carry padding.
func decodeBase32Secret(s string) ([]byte, error) {
	cleaned := strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	cleaned = strings.TrimRight(cleaned, "=")

	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid base32 secret: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("invalid base32 secret: empty")
	}
	return raw, nil
}
