// Package bigquery is the BigQuery-backed store for linked accounts, their
// transactions, and completed mentor sessions.
package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/shettydevesh/zenvestAi-backend/internal/fidata"
	"github.com/shettydevesh/zenvestAi-backend/internal/mentor"
)

var (
	projectID = "zenvest-ai-prod"
	datasetID = "zenvest"
)

// Configure overrides the project and dataset targeted by this package.
// Call once at startup, before any repository is created.
func Configure(project, dataset string) {
	if project != "" {
		projectID = project
	}
	if dataset != "" {
		datasetID = dataset
	}
}

// Repository holds a shared BigQuery client so one request does not open a
// connection per query. It backs both the normalizer's account lookups and
// mentor session persistence.
type Repository struct {
	client *bigquery.Client
}

var (
	_ fidata.AccountStore = (*Repository)(nil)
	_ mentor.SessionStore = (*Repository)(nil)
)

// NewRepository creates a repository with a shared BigQuery client.
func NewRepository(ctx context.Context) (*Repository, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewRepository: creating client: %w", err)
	}
	return &Repository{client: client}, nil
}

// Close closes the BigQuery client connection.
func (r *Repository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// ListAccounts implements fidata.AccountStore.
func (r *Repository) ListAccounts(ctx context.Context, userID string) ([]fidata.RawAccount, error) {
	rows, err := ListUserAccountsWithClient(ctx, r.client, userID)
	if err != nil {
		return nil, err
	}

	accounts := make([]fidata.RawAccount, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, row.ToRaw())
	}
	return accounts, nil
}

// ListTransactionsThrough implements fidata.AccountStore.
func (r *Repository) ListTransactionsThrough(ctx context.Context, userID string, accountIDs []string, through time.Time) ([]fidata.RawTransaction, error) {
	rows, err := ListTransactionsThroughWithClient(ctx, r.client, userID, accountIDs, through)
	if err != nil {
		return nil, err
	}

	txns := make([]fidata.RawTransaction, 0, len(rows))
	for _, row := range rows {
		txns = append(txns, row.ToRaw())
	}
	return txns, nil
}

// SaveMentorSession implements mentor.SessionStore.
func (r *Repository) SaveMentorSession(ctx context.Context, session *mentor.Session) error {
	return InsertMentorSessionWithClient(ctx, r.client, session)
}

// ListMentorSessions implements mentor.SessionStore.
func (r *Repository) ListMentorSessions(ctx context.Context, userID string, limit int) ([]*mentor.Session, error) {
	return ListMentorSessionsWithClient(ctx, r.client, userID, limit)
}
