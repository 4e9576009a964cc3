// Package store persists named layout plans.
//
// Store is the interface the HTTP server saves and loads plans through.
// MongoStore backs it with a MongoDB collection keyed by plan name;
// MemoryStore keeps plans in process for tests and for serving a single
// plan loaded from disk.
package store
