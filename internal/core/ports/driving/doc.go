// Package driving provides interfaces consumed by presentation adapters (primary/inbound ports).
package driving
