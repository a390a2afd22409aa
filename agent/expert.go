package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// maxCalls bounds the number of function calls an expert can chain to answer a single question.
const maxCalls = 8

// Expert represent a chat with a business expert.
type Expert struct {
	Name      string                       `json:"name"`
	ModelName string                       `json:"model_name"`
	Config    *genai.GenerateContentConfig `json:"config"`
	Library   Library
	chat      *genai.Chat
}

// Start creates the chat session of the expert.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return fmt.Errorf("starting expert %s: %w", e.Name, err)
	}
	e.chat = chat
	return nil
}

// Ask sends parts to the expert, and serves its function calls until it
// answers with text.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	for range maxCalls {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return nil, err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("no response from expert %s", e.Name)
		}
		content := resp.Candidates[0].Content

		var calls []*genai.Part
		for _, p := range content.Parts {
			if p.FunctionCall == nil {
				continue
			}
			if e.Library == nil {
				return nil, fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
			}
			calls = append(calls, &genai.Part{FunctionResponse: e.Library(ctx, p.FunctionCall)})
		}
		if len(calls) == 0 {
			return content, nil
		}
		// send back the results until we have a real response.
		parts = calls
	}
	return nil, fmt.Errorf("expert %s made more than %d function calls", e.Name, maxCalls)
}
