// Package llm defines the model interface the agent runtime talks to and
// ships a provider-agnostic implementation built on gollm.
//
// The agent core only ever sees the Model contract: a capability probe
// (SupportsToolCalling) and a single blocking GenerateResponse call that
// takes the conversation so far plus optional tool schemas and returns
// text and/or requested tool calls. Everything provider-specific (wire
// formats, retries, error classification, model capability lookup) lives
// below that line in this package.
//
//	model, err := llm.New(llm.Config{Model: "gpt-5.2"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := model.GenerateResponse(ctx, llm.Request{
//	    Messages: []llm.Message{llm.UserMessage("Hello")},
//	})
package llm
