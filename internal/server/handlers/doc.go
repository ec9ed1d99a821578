// Package handlers contains HTTP handlers for the policygen HTTP API.
//
// This package provides handlers for:
//   - Policy preview and download
//   - Questionnaire options
//   - Health and generation history (admin listener)
//
// Errors are classified with the foundation/errors package and written
// through its HTTPErrorAdapter so every failure carries the same
// {"success":false,"error":...} envelope.
package handlers
