// Package services implements the engine's core operations behind the
// driving ports: ingestion, indexing, retrieval, answer composition and
// document management. Services hold no mutable state across calls
// other than configuration and are safe for concurrent use.
package services
