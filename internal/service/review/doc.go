// Package review implements the product-review-to-conversation pipeline.
//
// A review webhook from the loyalty CRM is validated, optionally
// enriched with the contact's most recent product-rating interaction,
// and turned into a support conversation for the matching end user.
// Unlike the CSAT pipeline this one is fully synchronous: the webhook
// response reports the created conversation or the mapped upstream
// failure.
package review
