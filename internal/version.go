package internal

// Version is the current totpvault release version
const Version = "1.1.0"
