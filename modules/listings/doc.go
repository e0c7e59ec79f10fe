// Package listings manages completed-gig earnings records: creation, bulk
// dataset import, filtered and paginated listing, partial updates, and
// removal.
package listings
