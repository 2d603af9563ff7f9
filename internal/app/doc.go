// Package app provides the application service layer.
//
// Reactor turns one inbound chat event into a sentiment-matched reaction and,
// for long messages, a warning post. It depends on domain ports, not adapters.
package app
