// Package formkit holds module-wide constants.
package formkit

// Version is the release version of the formkit module and CLI.
const Version = "0.1.0"
