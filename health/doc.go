// Package health provides liveness checks for the library's backing
// services: the token store and, when configured, the Redis response cache.
// An Aggregator fans the registered checks out concurrently and folds the
// results into one overall status.
package health
