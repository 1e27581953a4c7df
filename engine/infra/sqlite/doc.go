// Package sqlite provides the modernc.org/sqlite backed post store.
//
// It mirrors the postgres driver layout: a Store owning the connection pool,
// embedded goose migrations, and a PostRepo implementing post.Repository.
// It is meant for local development and single-node deployments.
package sqlite
