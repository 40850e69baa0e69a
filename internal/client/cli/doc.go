// Package cli implements the interactive cityreport client: a small REPL
// over the session service and the API client. Citizen commands cover
// reports and rewards; admin commands cover user management and triage.
package cli
