package providers

import (
	"context"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/zero-day-ai/graphchat/internal/llm"
)

// generate runs one langchaingo completion and converts the result. tools
// may be nil, in which case no tools are offered to the model.
func generate(ctx context.Context, model llms.Model, providerName string, req llm.CompletionRequest, tools []llm.ToolDef) (*llm.CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, llm.NewInvalidRequestError(err.Error())
	}

	callOpts, err := buildCallOptionsWithTools(req, tools)
	if err != nil {
		return nil, err
	}

	resp, err := model.GenerateContent(ctx, toSchemaMessages(req.Messages), callOpts...)
	if err != nil {
		return nil, llm.TranslateError(providerName, err)
	}

	return fromLangchainResponse(resp, req.Model), nil
}

// toSchemaMessages converts conversation messages to langchaingo
// MessageContent. Assistant tool calls and tool results keep their call IDs
// so that providers can pair them.
func toSchemaMessages(messages []llm.Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(messages))

	for _, msg := range messages {
		var msgContent llms.MessageContent

		switch msg.Role {
		case llm.RoleSystem:
			msgContent = llms.MessageContent{
				Role:  llms.ChatMessageTypeSystem,
				Parts: []llms.ContentPart{llms.TextPart(msg.Content)},
			}
		case llm.RoleAssistant:
			msgContent = llms.MessageContent{Role: llms.ChatMessageTypeAI}
			if msg.Content != "" {
				msgContent.Parts = append(msgContent.Parts, llms.TextPart(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				callType := tc.Type
				if callType == "" {
					callType = "function"
				}
				msgContent.Parts = append(msgContent.Parts, llms.ToolCall{
					ID:   tc.ID,
					Type: callType,
					FunctionCall: &llms.FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
		case llm.RoleTool:
			msgContent = llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: msg.ToolCallID,
						Name:       msg.Name,
						Content:    msg.Content,
					},
				},
			}
		default:
			msgContent = llms.MessageContent{
				Role:  llms.ChatMessageTypeHuman,
				Parts: []llms.ContentPart{llms.TextPart(msg.Content)},
			}
		}

		result = append(result, msgContent)
	}

	return result
}

// fromLangchainResponse converts a langchaingo response. Only the first
// choice is used.
func fromLangchainResponse(resp *llms.ContentResponse, model string) *llm.CompletionResponse {
	if resp == nil || len(resp.Choices) == 0 {
		return &llm.CompletionResponse{
			ID:           uuid.New().String(),
			Model:        model,
			Message:      llm.Message{Role: llm.RoleAssistant},
			FinishReason: llm.FinishReasonStop,
		}
	}

	choice := resp.Choices[0]

	var toolCalls []llm.ToolCall
	if len(choice.ToolCalls) > 0 {
		toolCalls = make([]llm.ToolCall, 0, len(choice.ToolCalls))
		for _, tc := range choice.ToolCalls {
			var name, arguments string
			if tc.FunctionCall != nil {
				name = tc.FunctionCall.Name
				arguments = tc.FunctionCall.Arguments
			}

			toolCalls = append(toolCalls, llm.ToolCall{
				ID:        tc.ID,
				Type:      tc.Type,
				Name:      name,
				Arguments: arguments,
			})
		}
	}

	finishReason := llm.FinishReasonStop
	switch choice.StopReason {
	case "length", "max_tokens":
		finishReason = llm.FinishReasonLength
	case "tool_calls", "function_call", "tool_use":
		finishReason = llm.FinishReasonToolCalls
	case "content_filter":
		finishReason = llm.FinishReasonContentFilter
	}
	if len(toolCalls) > 0 && finishReason == llm.FinishReasonStop {
		finishReason = llm.FinishReasonToolCalls
	}

	return &llm.CompletionResponse{
		ID:    uuid.New().String(),
		Model: model,
		Message: llm.Message{
			Role:      llm.RoleAssistant,
			Content:   choice.Content,
			ToolCalls: toolCalls,
		},
		FinishReason: finishReason,
		Usage:        usageFromGenerationInfo(choice.GenerationInfo),
	}
}

// usageFromGenerationInfo reads token counts from the provider specific
// generation info map. Key names differ between back ends.
func usageFromGenerationInfo(info map[string]any) llm.CompletionTokenUsage {
	usage := llm.CompletionTokenUsage{
		PromptTokens:     intFromInfo(info, "PromptTokens", "InputTokens", "input_tokens"),
		CompletionTokens: intFromInfo(info, "CompletionTokens", "OutputTokens", "output_tokens"),
		TotalTokens:      intFromInfo(info, "TotalTokens", "total_tokens"),
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}
	return usage
}

func intFromInfo(info map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := info[key].(type) {
		case int:
			return v
		case int32:
			return int(v)
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}

// buildCallOptions converts a request to langchaingo call options
func buildCallOptions(req llm.CompletionRequest) []llms.CallOption {
	callOpts := make([]llms.CallOption, 0)

	if req.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(req.Temperature))
	}

	if req.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(req.MaxTokens))
	}

	if req.Model != "" {
		callOpts = append(callOpts, llms.WithModel(req.Model))
	}

	return callOpts
}

// toSchemaTools converts tool definitions to langchaingo Tool format
func toSchemaTools(tools []llm.ToolDef) ([]llms.Tool, error) {
	if len(tools) == 0 {
		return nil, nil
	}

	result := make([]llms.Tool, 0, len(tools))
	for _, tool := range tools {
		if err := tool.Validate(); err != nil {
			return nil, llm.NewInvalidRequestError(err.Error())
		}
		params, err := tool.ParametersMap()
		if err != nil {
			return nil, llm.NewInvalidRequestError(err.Error())
		}
		result = append(result, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  params,
			},
		})
	}
	return result, nil
}

// buildCallOptionsWithTools adds tools to call options
func buildCallOptionsWithTools(req llm.CompletionRequest, tools []llm.ToolDef) ([]llms.CallOption, error) {
	callOpts := buildCallOptions(req)
	schemaTools, err := toSchemaTools(tools)
	if err != nil {
		return nil, err
	}
	if len(schemaTools) > 0 {
		callOpts = append(callOpts, llms.WithTools(schemaTools))
	}
	return callOpts, nil
}
