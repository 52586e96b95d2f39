// Package features holds the dashboard payload types, their storage names
// and merge policies, and Session, the registry that owns one store per
// feature for the lifetime of an application session.
package features
