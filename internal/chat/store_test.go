package chat

import (
	"context"
	"testing"
	"time"
)

func newStore(t *testing.T) *ConversationStore {
	t.Helper()
	store, err := NewConversationStore()
	if err != nil {
		t.Fatalf("NewConversationStore: %v", err)
	}
	return store
}

func TestCreateAndGet(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	conv, err := store.Create(ctx, "user-1", DefaultPersona)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if conv.ID == "" || conv.UserID != "user-1" || conv.Persona != DefaultPersona {
		t.Errorf("Unexpected conversation: %+v", conv)
	}

	got, err := store.Get(ctx, conv.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != conv.ID {
		t.Errorf("Get returned %q, want %q", got.ID, conv.ID)
	}
}

func TestCreateRequiresUser(t *testing.T) {
	store := newStore(t)
	if _, err := store.Create(context.Background(), "", DefaultPersona); err == nil {
		t.Error("Expected error for empty user ID")
	}
}

func TestGetUnknownConversation(t *testing.T) {
	store := newStore(t)
	if _, err := store.Get(context.Background(), "missing"); err == nil {
		t.Error("Expected error for unknown conversation")
	}
}

func TestAppendUpdatesConversation(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	conv, _ := store.Create(ctx, "user-1", DefaultPersona)
	if err := store.Append(ctx, conv.ID, Message{Role: "user", Content: "hi"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(ctx, conv.ID, Message{Role: "model", Content: "hello"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := store.Get(ctx, conv.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(got.Messages))
	}
	if got.Messages[0].Content != "hi" || got.Messages[1].Role != "model" {
		t.Errorf("Unexpected messages: %+v", got.Messages)
	}
	if got.Messages[0].CreatedAt.IsZero() {
		t.Error("Expected message timestamp to be set")
	}
	if !got.UpdatedAt.After(conv.UpdatedAt) && !got.UpdatedAt.Equal(conv.UpdatedAt) {
		t.Error("Expected updated timestamp to advance")
	}
}

func TestAppendUnknownConversation(t *testing.T) {
	store := newStore(t)
	if err := store.Append(context.Background(), "missing", Message{Role: "user", Content: "hi"}); err == nil {
		t.Error("Expected error for unknown conversation")
	}
}

func TestListByUserOrdersByRecency(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	first, _ := store.Create(ctx, "user-1", DefaultPersona)
	second, _ := store.Create(ctx, "user-1", DefaultPersona)
	store.Create(ctx, "user-2", DefaultPersona)

	// Touch the first conversation so it becomes the most recent.
	if err := store.Append(ctx, first.ID, Message{Role: "user", Content: "hi", CreatedAt: time.Now().Add(time.Minute)}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	list, err := store.ListByUser(ctx, "user-1", false)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 conversations, got %d", len(list))
	}
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Errorf("Unexpected order: %q, %q", list[0].ID, list[1].ID)
	}
}

func TestArchiveHidesConversation(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	conv, _ := store.Create(ctx, "user-1", DefaultPersona)
	if err := store.Archive(ctx, conv.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	visible, _ := store.ListByUser(ctx, "user-1", false)
	if len(visible) != 0 {
		t.Errorf("Expected archived conversation hidden, got %d", len(visible))
	}

	all, _ := store.ListByUser(ctx, "user-1", true)
	if len(all) != 1 || !all[0].Archived {
		t.Errorf("Expected archived conversation listed with flag, got %+v", all)
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	conv, _ := store.Create(ctx, "user-1", DefaultPersona)
	store.Append(ctx, conv.ID, Message{Role: "user", Content: "hi"})

	got, _ := store.Get(ctx, conv.ID)
	got.Messages[0].Content = "tampered"

	again, _ := store.Get(ctx, conv.ID)
	if again.Messages[0].Content != "hi" {
		t.Error("Mutating a returned conversation leaked into the store")
	}
}
