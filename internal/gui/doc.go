// Package gui provides the optional desktop window that displays TOTP QR
// codes (--window flag), with navigation between records and PNG export.
package gui
