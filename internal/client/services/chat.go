package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/models"
	"github.com/google/uuid"
)

var ErrEmptyQuestion = errors.New("question is empty")

// ChatErrorReply is what the transcript shows when the tutor could not answer.
const ChatErrorReply = "Sorry, I encountered an error. Please try again."

type ChatAPI interface {
	Answer(ctx context.Context, question string) (*models.ChatAnswer, error)
}

// ChatService keeps the transcript of one chat session in memory.
type ChatService struct {
	api ChatAPI
	now func() time.Time

	mu       sync.Mutex
	messages []models.Message
}

func NewChatService(api ChatAPI) *ChatService {
	return &ChatService{api: api, now: time.Now}
}

// Ask appends the question and the tutor's reply to the transcript and
// returns the reply. On failure the reply is ChatErrorReply and the error is
// returned alongside it.
func (s *ChatService) Ask(ctx context.Context, question string) (models.Message, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return models.Message{}, ErrEmptyQuestion
	}
	s.append(models.SenderUser, question)

	ans, err := s.api.Answer(ctx, question)
	if err != nil {
		return s.append(models.SenderAI, ChatErrorReply), err
	}
	return s.append(models.SenderAI, ans.Reply()), nil
}

func (s *ChatService) Transcript() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *ChatService) Clear() {
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
}

func (s *ChatService) append(sender models.Sender, text string) models.Message {
	m := models.Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: s.now(),
	}
	s.mu.Lock()
	s.messages = append(s.messages, m)
	s.mu.Unlock()
	return m
}
