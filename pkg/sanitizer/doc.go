// Package sanitizer provides input normalization for passenger and bus data.
//
// All normalization functions are idempotent - applying them multiple times produces
// the same result. Functions handle invalid input gracefully, typically by returning
// empty strings or empty slices rather than errors.
//
// Normalization includes:
//   - Phone numbers: Convert to E.164 format (+[country][number]); invalid numbers become ""
//   - Emails: Trim and lowercase
//   - Names and route stops: Collapse whitespace, trim leading/trailing spaces
//   - Seat numbers: Trim, uppercase - "a1 " becomes "A1"
//   - Slices: Remove duplicates and empty values after normalization
package sanitizer
