// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures
// (field errors for request bodies, HTTPError for API responses)
// so every failure the API reports is meaningful and consistent.
package errs
