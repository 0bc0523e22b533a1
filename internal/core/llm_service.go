package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/config"
)

const (
	defaultTitleModelName = "gemini-1.5-flash-latest"

	titleSystemInstruction = "You are a helpful assistant that generates concise titles for chat conversations. " +
		"The title should be 3-5 words maximum. Just return the title itself, nothing else."
)

// LLMService wraps the hosted inference endpoint. It exists only when the
// credential is configured; the chat relay treats a nil service as the
// missing-credential state and never issues a network call.
type LLMService struct {
	client    *genai.Client
	modelName string
	logger    *zap.Logger
}

func NewLLMService(logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &LLMService{
		client:    client,
		modelName: config.AppConfig.GeminiModel,
		logger:    logger,
	}, nil
}

func (s *LLMService) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			s.logger.Warn("error closing GenAI client", zap.Error(err))
		}
	}
}

// GetChatCompletion sends the conversation history and returns the full
// reply in one piece. The last entry of promptHistory must be the pending
// user turn.
func (s *LLMService) GetChatCompletion(ctx context.Context, systemInstruction string, promptHistory []*genai.Content) (string, error) {
	chatSession, lastParts, err := s.startSession(systemInstruction, promptHistory)
	if err != nil {
		return "", err
	}

	resp, err := chatSession.SendMessage(ctx, lastParts...)
	if err != nil {
		return "", fmt.Errorf("gemini chat SendMessage failed: %w", err)
	}

	text := collectText(resp)
	if text == "" {
		s.logger.Warn("gemini response was empty or had no text parts")
		return "I'm sorry, I couldn't generate a response at this time. Please try again.", nil
	}
	return text, nil
}

// StreamChatCompletion sends the conversation history and forwards each
// reply fragment to onFragment as it arrives. It returns the accumulated
// reply text; a mid-stream failure returns what was received plus the error.
func (s *LLMService) StreamChatCompletion(ctx context.Context, systemInstruction string, promptHistory []*genai.Content, onFragment func(string)) (string, error) {
	chatSession, lastParts, err := s.startSession(systemInstruction, promptHistory)
	if err != nil {
		return "", err
	}

	iter := chatSession.SendMessageStream(ctx, lastParts...)
	var full strings.Builder
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return full.String(), fmt.Errorf("gemini stream failed: %w", err)
		}
		fragment := collectText(resp)
		if fragment == "" {
			continue
		}
		full.WriteString(fragment)
		if onFragment != nil {
			onFragment(fragment)
		}
	}
	return full.String(), nil
}

func (s *LLMService) startSession(systemInstruction string, promptHistory []*genai.Content) (*genai.ChatSession, []genai.Part, error) {
	if len(promptHistory) == 0 {
		return nil, nil, fmt.Errorf("prompt history is empty for chat completion")
	}

	last := promptHistory[len(promptHistory)-1]
	if last.Role != "user" {
		return nil, nil, fmt.Errorf("last message in history is not from 'user', cannot proceed with chat completion")
	}

	model := s.client.GenerativeModel(s.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	chatSession := model.StartChat()
	chatSession.History = promptHistory[:len(promptHistory)-1]
	return chatSession, last.Parts, nil
}

func (s *LLMService) GenerateTitleForChat(ctx context.Context, chatSummary string) (string, error) {
	model := s.client.GenerativeModel(defaultTitleModelName)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(titleSystemInstruction)},
	}

	temp := float32(0.3)
	maxTokens := int32(20)

	model.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: &maxTokens,
		Temperature:     &temp,
	}

	userPromptForTitle := fmt.Sprintf("Generate a very concise title (3-5 words maximum) for a conversation that starts with or is about: \"%s\".", chatSummary)

	resp, err := model.GenerateContent(ctx, genai.Text(userPromptForTitle))
	if err != nil {
		return "", fmt.Errorf("gemini title generation request failed: %w", err)
	}

	title := collectText(resp)
	if title == "" {
		return "Chat", fmt.Errorf("LLM generated an empty title string")
	}
	return strings.Trim(title, "\"'\n\r\t ."), nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}
