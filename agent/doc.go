// Package agent implements a tool-calling agent loop on top of the llm
// package: it drives a bounded request/act/respond cycle with a language
// model, executes tool calls the model requests, guards against repeated
// identical calls, and notifies registered observers of lifecycle events.
//
// A turn is one call to Agent.Chat. The loop snapshots conversation memory,
// invokes the model, executes any requested tool calls, and repeats until
// the model produces plain text, a repeat call is detected, or the iteration
// cap is reached. All failure paths converge on a text response; Chat never
// returns an error.
package agent
