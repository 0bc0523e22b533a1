package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/auth"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/core"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/export"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/store"
)

type contextKey string

const (
	ctxUserID         contextKey = "userID"
	ctxExternalUserID contextKey = "externalUserID"
)

type APIHandler struct {
	chatService   *core.ChatService
	reportService *core.ReportService
	logger        *zap.Logger
}

func NewAPIHandler(cs *core.ChatService, rs *core.ReportService, logger *zap.Logger) *APIHandler {
	return &APIHandler{chatService: cs, reportService: rs, logger: logger}
}

func (h *APIHandler) JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		externalUserID, err := auth.ValidateJWT(tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		user, err := h.chatService.GetUserByExternalID(externalUserID)
		if err != nil {
			h.logger.Error("auth middleware failed to resolve user",
				zap.String("external_user_id", externalUserID), zap.Error(err))
			http.Error(w, "Failed to process user identity", http.StatusInternalServerError)
			return
		}

		if user == nil {
			http.Error(w, "User not found", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserID, user.ID)
		ctx = context.WithValue(ctx, ctxExternalUserID, user.ExternalUserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// --- Auth ---

type SignupRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

func (h *APIHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.UserID == "" || req.Password == "" {
		http.Error(w, "User ID and password are required", http.StatusBadRequest)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", zap.String("user_id", req.UserID), zap.Error(err))
		http.Error(w, "Failed to process password", http.StatusInternalServerError)
		return
	}

	user, err := h.chatService.CreateUser(req.UserID, hashedPassword)
	if err != nil {
		h.logger.Error("failed to create user", zap.String("user_id", req.UserID), zap.Error(err))
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

type LoginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.UserID == "" || req.Password == "" {
		http.Error(w, "User ID and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.chatService.GetUserByExternalID(req.UserID)
	if err != nil {
		h.logger.Error("failed to look up user", zap.String("user_id", req.UserID), zap.Error(err))
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateJWT(req.UserID)
	if err != nil {
		h.logger.Error("failed to generate JWT", zap.String("user_id", req.UserID), zap.Error(err))
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// --- Dataset / reporting ---

func (h *APIHandler) ListEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	view := h.reportService.Employees(ParseCriteria(r))
	writeJSON(w, map[string]interface{}{
		"count":     len(view),
		"employees": view,
	})
}

func (h *APIHandler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.reportService.Summary(ParseCriteria(r)))
}

func (h *APIHandler) ChartsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.reportService.Charts(ParseCriteria(r)))
}

func (h *APIHandler) OptionsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.reportService.Options())
}

func (h *APIHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = export.FormatCSV
	}

	var contentType string
	switch format {
	case export.FormatCSV:
		contentType = "text/csv"
	case export.FormatXLSX:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		http.Error(w, "Unsupported export format: "+format, http.StatusBadRequest)
		return
	}

	filename := fmt.Sprintf("employees_filtered_%s.%s", time.Now().Format("20060102_150405"), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.reportService.Export(w, ParseCriteria(r), format); err != nil {
		// Nothing has been flushed yet on the common failure path (the file
		// is built in memory), so the error can still replace the body.
		h.logger.Error("export failed", zap.String("format", format), zap.Error(err))
		w.Header().Del("Content-Disposition")
		http.Error(w, "Export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// --- Chat ---

type CreateChatRequest struct {
	FirstMessage *string `json:"first_message,omitempty"`
}

type CreateChatResponse struct {
	*store.Chat
	Messages []store.Message `json:"messages,omitempty"`
}

func (h *APIHandler) CreateChatHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(ctxUserID).(int64)

	// The body is optional; a bare POST opens an empty chat.
	var req CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	chat, messages, err := h.chatService.CreateChat(r.Context(), userID, req.FirstMessage)
	if err != nil {
		h.logger.Error("failed to create chat", zap.Int64("user_id", userID), zap.Error(err))
		http.Error(w, "Failed to create chat", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(CreateChatResponse{Chat: chat, Messages: messages})
}

func (h *APIHandler) ListChatsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(ctxUserID).(int64)

	chats, err := h.chatService.GetChats(userID)
	if err != nil {
		h.logger.Error("failed to list chats", zap.Int64("user_id", userID), zap.Error(err))
		http.Error(w, "Failed to list chats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, chats)
}

type GetChatDetailsResponse struct {
	*store.Chat
	Messages []store.Message `json:"messages"`
}

func (h *APIHandler) GetChatDetailsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(ctxUserID).(int64)
	chatID := chi.URLParam(r, "chatID")

	chat, messages, err := h.chatService.GetChatDetails(chatID, userID)
	if err != nil {
		h.logger.Error("failed to get chat details",
			zap.Int64("user_id", userID), zap.String("chat_id", chatID), zap.Error(err))
		http.Error(w, "Failed to get chat details", http.StatusInternalServerError)
		return
	}
	if chat == nil {
		http.Error(w, "Chat not found", http.StatusNotFound)
		return
	}

	writeJSON(w, GetChatDetailsResponse{Chat: chat, Messages: messages})
}

type PostMessageRequest struct {
	Content string `json:"content"`
}

func (h *APIHandler) PostMessageHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(ctxUserID).(int64)
	chatID := chi.URLParam(r, "chatID")

	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, "Message content cannot be empty", http.StatusBadRequest)
		return
	}

	reply, err := h.chatService.PostMessage(r.Context(), chatID, userID, req.Content)
	if err != nil {
		if err.Error() == "chat not found" {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			h.logger.Error("failed to post message",
				zap.Int64("user_id", userID), zap.String("chat_id", chatID), zap.Error(err))
			http.Error(w, "Failed to post message", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, reply)
}

// StreamMessageHandler relays one user message and streams the reply back
// as server-sent events: "delta" events carry fragments, a final "done"
// event carries the stored reply message.
func (h *APIHandler) StreamMessageHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(ctxUserID).(int64)
	chatID := chi.URLParam(r, "chatID")

	content := strings.TrimSpace(r.URL.Query().Get("message"))
	if content == "" {
		http.Error(w, "message query parameter is required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	onFragment := func(fragment string) {
		data, _ := json.Marshal(map[string]string{"text": fragment})
		fmt.Fprintf(w, "event: delta\ndata: %s\n\n", data)
		flusher.Flush()
	}

	reply, err := h.chatService.StreamMessage(r.Context(), chatID, userID, content, onFragment)
	if err != nil {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintf(w, "event: error\ndata: %s\n\n", data)
		flusher.Flush()
		return
	}

	data, _ := json.Marshal(reply)
	fmt.Fprintf(w, "event: done\ndata: %s\n\n", data)
	flusher.Flush()
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
