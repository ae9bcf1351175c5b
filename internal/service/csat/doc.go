// Package csat implements the CSAT-to-loyalty-points pipeline.
//
// A CONVERSATION_RATED webhook from the support inbox is validated,
// published to the observation sink, and answered immediately with the
// computed point award. The actual award (contact lookup, point account
// lookup, transaction post, interaction post) runs as a detached
// background continuation whose failures are logged, never surfaced to
// the webhook sender.
//
// The service depends on the CRM interface defined in this package and
// should never import from the handler layer.
package csat
