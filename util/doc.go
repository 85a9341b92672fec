// Package util provides small parsing and formatting helpers shared
// across hydrokit packages: human-readable size strings and secret
// masking for safe display.
package util
