// Package store persists encrypted TOTP record tokens. Two variants exist
// behind one interface: an append-only newline-delimited text file and a
// single-table SQLite database. Both preserve insertion order on read and
// support neither updates nor deletes.
package store
