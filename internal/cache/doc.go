// Package cache provides a file-based TTL cache for backend GET responses.
//
// Entries are stored as JSON files (one per key) under a cache directory,
// typically ~/.postdeck/cache. Keys are SHA-256 digests of the request method
// and path, so identical requests map to the same file across runs. The API
// client consults the cache before hitting the network and invalidates the
// affected entries after a post is created or deleted.
package cache
