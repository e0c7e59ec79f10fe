// Package email delivers transactional email through Postmark, with a logging
// sender for local development. Delivery failures are surfaced to callers;
// nothing in this package retries.
package email
