// Package utils provides small shared helpers: filename sanitization,
// content-type inspection for transport logging, and safe numeric conversions.
package utils
