// Package users manages freelancer profiles: registration with explicit
// password hashing, lookup, filtered and paginated listing, partial updates,
// and removal. It also adapts profile storage to the credential lookup the
// login flow depends on.
package users
