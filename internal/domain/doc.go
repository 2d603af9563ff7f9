// Package domain defines the core domain types and interfaces.
//
// Concept-oriented files (sentiment.go, event.go, chat.go, errors.go) hold shared
// value types and the ports that adapters implement. No implementation code.
package domain
