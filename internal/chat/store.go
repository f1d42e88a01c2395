package chat

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
)

// Conversation is one persona-chat thread and its messages.
type Conversation struct {
	ID        string    `json:"conversation_id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title,omitempty"`
	Persona   string    `json:"persona"`
	Archived  bool      `json:"is_archived"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages"`
}

// Message is a single turn in a conversation.
type Message struct {
	Role      string    `json:"role"` // "user" or "model"
	Content   string    `json:"content"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationStore keeps persona conversations in memory, with a ristretto
// TTL cache fronting the authoritative map for hot conversation lookups.
// Data is lost on restart; this never caches computed analysis summaries.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
	cache         *ristretto.Cache
	cacheTTL      time.Duration
}

// NewConversationStore creates an in-memory conversation store.
func NewConversationStore() (*ConversationStore, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1 << 24,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("NewConversationStore: creating cache: %w", err)
	}

	return &ConversationStore{
		conversations: make(map[string]*Conversation),
		cache:         cache,
		cacheTTL:      30 * time.Minute,
	}, nil
}

// Create starts a new conversation for the user.
func (s *ConversationStore) Create(ctx context.Context, userID, persona string) (*Conversation, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	now := time.Now()
	conv := &Conversation{
		ID:        fmt.Sprintf("conv_%d_%d", uuid.New().ID()%1_000_000, now.Unix()),
		UserID:    userID,
		Persona:   persona,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []Message{},
	}

	s.mu.Lock()
	s.conversations[conv.ID] = conv
	s.mu.Unlock()

	return s.copyOf(conv), nil
}

// Get retrieves a conversation, consulting the cache first.
func (s *ConversationStore) Get(ctx context.Context, conversationID string) (*Conversation, error) {
	if v, ok := s.cache.Get(conversationID); ok {
		if conv, ok := v.(*Conversation); ok {
			return s.copyOf(conv), nil
		}
	}

	s.mu.RLock()
	conv, exists := s.conversations[conversationID]
	s.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("conversation not found: %s", conversationID)
	}

	snapshot := s.copyOf(conv)
	s.cache.SetWithTTL(conversationID, snapshot, int64(len(snapshot.Messages)+1), s.cacheTTL)
	return snapshot, nil
}

// Append adds a message to a conversation and invalidates its cache entry.
func (s *ConversationStore) Append(ctx context.Context, conversationID string, msg Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv, exists := s.conversations[conversationID]
	if !exists {
		return fmt.Errorf("conversation not found: %s", conversationID)
	}
	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = msg.CreatedAt

	s.cache.Del(conversationID)
	return nil
}

// ListByUser returns the user's conversations, most recently updated first.
func (s *ConversationStore) ListByUser(ctx context.Context, userID string, includeArchived bool) ([]*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Conversation
	for _, conv := range s.conversations {
		if conv.UserID != userID {
			continue
		}
		if conv.Archived && !includeArchived {
			continue
		}
		out = append(out, s.copyOf(conv))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Archive marks a conversation as archived.
func (s *ConversationStore) Archive(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, exists := s.conversations[conversationID]
	if !exists {
		return fmt.Errorf("conversation not found: %s", conversationID)
	}
	conv.Archived = true
	conv.UpdatedAt = time.Now()

	s.cache.Del(conversationID)
	return nil
}

// copyOf snapshots a conversation so callers cannot mutate stored state.
func (s *ConversationStore) copyOf(conv *Conversation) *Conversation {
	out := *conv
	out.Messages = make([]Message, len(conv.Messages))
	copy(out.Messages, conv.Messages)
	return &out
}
