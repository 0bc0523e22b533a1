package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/store"
)

const (
	historyDepth = 10

	chatSystemInstruction = "You are an HR analytics assistant embedded in a reporting dashboard. " +
		"Answer questions about the loaded employee dataset using the summary provided below. " +
		"If the answer cannot be derived from the summary or the conversation, say that you don't have the information. " +
		"Keep answers concise and directly related to the question. Do not make up numbers."
)

// llmClient is the slice of LLMService the relay depends on.
type llmClient interface {
	GetChatCompletion(ctx context.Context, systemInstruction string, promptHistory []*genai.Content) (string, error)
	StreamChatCompletion(ctx context.Context, systemInstruction string, promptHistory []*genai.Content, onFragment func(string)) (string, error)
	GenerateTitleForChat(ctx context.Context, chatSummary string) (string, error)
}

// ChatService is the relay between stored conversation logs and the
// inference endpoint. llm may be nil (missing credential); every submission
// then produces the visible system note without a network call.
type ChatService struct {
	dbStore *store.SQLiteStore
	llm     llmClient
	reports *ReportService
	logger  *zap.Logger
}

func NewChatService(db *store.SQLiteStore, llm *LLMService, reports *ReportService, logger *zap.Logger) *ChatService {
	s := &ChatService{
		dbStore: db,
		reports: reports,
		logger:  logger,
	}
	if llm != nil {
		s.llm = llm
	}
	return s
}

func (s *ChatService) GetUserByExternalID(externalUserID string) (*store.User, error) {
	return s.dbStore.GetUserByExternalID(externalUserID)
}

func (s *ChatService) CreateUser(externalUserID, passwordHash string) (*store.User, error) {
	return s.dbStore.CreateUser(externalUserID, passwordHash)
}

func (s *ChatService) CreateChat(ctx context.Context, userID int64, firstMessageContent *string) (*store.Chat, []store.Message, error) {
	chat, err := s.dbStore.CreateChat(userID, nil) // Title is generated after the first exchange
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create chat in DB: %w", err)
	}

	var messages []store.Message
	if firstMessageContent != nil && *firstMessageContent != "" {
		userMsg, reply, err := s.relay(ctx, chat.ID, userID, *firstMessageContent, nil)
		if err != nil {
			return nil, nil, err
		}
		messages = append(messages, *userMsg, *reply)
		s.maybeGenerateTitle(chat, userID, *firstMessageContent)
	}

	return chat, messages, nil
}

func (s *ChatService) GetChats(userID int64) ([]store.Chat, error) {
	return s.dbStore.GetChatsByUserID(userID)
}

func (s *ChatService) GetChatDetails(chatID string, userID int64) (*store.Chat, []store.Message, error) {
	chat, err := s.dbStore.GetChatByID(chatID, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get chat: %w", err)
	}
	if chat == nil {
		return nil, nil, nil // Not found
	}

	messages, err := s.dbStore.GetMessagesByChatID(chatID, 100, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get messages for chat: %w", err)
	}
	return chat, messages, nil
}

// PostMessage runs one full relay cycle and returns the stored reply — a
// model message on success, a system note on failure.
func (s *ChatService) PostMessage(ctx context.Context, chatID string, userID int64, userContent string) (*store.Message, error) {
	chat, err := s.dbStore.GetChatByID(chatID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify chat: %w", err)
	}
	if chat == nil {
		return nil, fmt.Errorf("chat not found")
	}

	_, reply, err := s.relay(ctx, chatID, userID, userContent, nil)
	if err != nil {
		return nil, err
	}

	s.maybeGenerateTitle(chat, userID, userContent)
	return reply, nil
}

// StreamMessage runs one relay cycle, forwarding reply fragments to
// onFragment as they arrive. The stored reply is returned once the stream
// completes or fails.
func (s *ChatService) StreamMessage(ctx context.Context, chatID string, userID int64, userContent string, onFragment func(string)) (*store.Message, error) {
	chat, err := s.dbStore.GetChatByID(chatID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify chat: %w", err)
	}
	if chat == nil {
		return nil, fmt.Errorf("chat not found")
	}

	_, reply, err := s.relay(ctx, chatID, userID, userContent, onFragment)
	if err != nil {
		return nil, err
	}

	s.maybeGenerateTitle(chat, userID, userContent)
	return reply, nil
}

// relay is the Sending→Streaming→Idle cycle: store the user turn, call the
// endpoint with the running history, store the reply. Endpoint failures are
// converted into a stored system note rather than an error, so the relay
// always returns to idle ready for a resubmission.
func (s *ChatService) relay(ctx context.Context, chatID string, userID int64, userContent string, onFragment func(string)) (*store.Message, *store.Message, error) {
	userMsg := store.Message{
		ChatID:  chatID,
		Sender:  store.SenderUser,
		Content: userContent,
	}

	// History is fetched before the pending turn is stored, so the turn
	// appears in the request exactly once, as the final message.
	var history []*genai.Content
	if s.llm != nil {
		h, err := s.buildHistory(chatID)
		if err != nil {
			s.logger.Warn("failed to load chat history, sending without it",
				zap.String("chat_id", chatID), zap.Error(err))
			h = nil
		}
		history = h
	}

	if err := s.dbStore.CreateMessage(&userMsg); err != nil {
		return nil, nil, fmt.Errorf("failed to store user message: %w", err)
	}

	reply := store.Message{ChatID: chatID}

	if s.llm == nil {
		// Missing credential: straight to the error state, no network call.
		reply.Sender = store.SenderSystem
		reply.Content = SystemNote(ChatErrMissingCredential)
	} else {
		history = append(history, &genai.Content{
			Role:  "user",
			Parts: []genai.Part{genai.Text(userContent)},
		})

		var content string
		var err error
		if onFragment != nil {
			content, err = s.llm.StreamChatCompletion(ctx, s.systemInstruction(), history, onFragment)
		} else {
			content, err = s.llm.GetChatCompletion(ctx, s.systemInstruction(), history)
		}

		if err != nil {
			kind := ClassifyChatError(err)
			s.logger.Error("inference request failed",
				zap.String("chat_id", chatID), zap.String("kind", string(kind)), zap.Error(err))
			reply.Sender = store.SenderSystem
			reply.Content = SystemNote(kind)
		} else {
			reply.Sender = store.SenderModel
			reply.Content = content
		}
	}

	if err := s.dbStore.CreateMessage(&reply); err != nil {
		return nil, nil, fmt.Errorf("failed to store reply message: %w", err)
	}
	return &userMsg, &reply, nil
}

// buildHistory replays the recent conversation as model turns. System notes
// are skipped; the endpoint only ever sees user and model turns.
func (s *ChatService) buildHistory(chatID string) ([]*genai.Content, error) {
	msgs, err := s.dbStore.GetLastNMessagesByChatID(chatID, historyDepth)
	if err != nil {
		return nil, err
	}

	var history []*genai.Content
	for _, msg := range msgs {
		if msg.Sender == store.SenderSystem {
			continue
		}
		history = append(history, &genai.Content{
			Role:  msg.Sender,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return history, nil
}

// systemInstruction grounds the assistant in the loaded dataset by
// appending a current KPI digest to the base instruction.
func (s *ChatService) systemInstruction() string {
	if s.reports == nil {
		return chatSystemInstruction
	}
	return chatSystemInstruction + "\n\nCurrent dataset summary:\n" + s.reports.DatasetDigest()
}

func (s *ChatService) maybeGenerateTitle(chat *store.Chat, userID int64, basisContent string) {
	if s.llm == nil || (chat.Title != nil && *chat.Title != "") {
		return
	}
	go s.generateAndSaveChatTitle(chat.ID, userID, basisContent)
}

func (s *ChatService) generateAndSaveChatTitle(chatID string, userID int64, basisContent string) {
	title, err := s.llm.GenerateTitleForChat(context.Background(), basisContent)
	if err != nil {
		s.logger.Warn("failed to generate chat title", zap.String("chat_id", chatID), zap.Error(err))
		return
	}
	title = strings.Trim(title, "\"'\n\r\t .")

	if err := s.dbStore.UpdateChatTitle(chatID, userID, title); err != nil {
		s.logger.Warn("failed to save chat title",
			zap.String("chat_id", chatID), zap.String("title", title), zap.Error(err))
	}
}
