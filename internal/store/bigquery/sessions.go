package bigquery

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/shettydevesh/zenvestAi-backend/internal/mentor"
)

// InsertMentorSession persists one completed mentor exchange.
func InsertMentorSession(ctx context.Context, session *mentor.Session) error {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return fmt.Errorf("InsertMentorSession: creating client: %w", err)
	}
	defer client.Close()

	return InsertMentorSessionWithClient(ctx, client, session)
}

// InsertMentorSessionWithClient persists a mentor session using the provided
// BigQuery client. The dataset and analysis snapshots are serialized into
// JSON columns; a snapshot that fails to marshal is stored as NULL rather
// than failing the whole insert.
func InsertMentorSessionWithClient(ctx context.Context, client *bigquery.Client, session *mentor.Session) error {
	if session == nil || session.SessionID == "" {
		return fmt.Errorf("InsertMentorSessionWithClient: session_id cannot be empty")
	}

	q := client.Query(`
		INSERT INTO ` + "`" + projectID + "." + datasetID + ".mentor_sessions" + "`" + ` (
			session_id, user_id, question, mentor_response, model,
			financial_data, analysis, metadata, created_ts
		)
		VALUES (
			@session_id, @user_id, @question, @mentor_response, @model,
			@financial_data, @analysis, @metadata, @created_ts
		)
	`)

	q.Parameters = []bigquery.QueryParameter{
		{Name: "session_id", Value: session.SessionID},
		{Name: "user_id", Value: session.UserID},
		{Name: "question", Value: session.Question},
		{Name: "mentor_response", Value: session.MentorResponse},
		{Name: "model", Value: session.Model},
		{Name: "financial_data", Value: jsonColumn(session.FinancialData)},
		{Name: "analysis", Value: jsonColumn(session.Analysis)},
		{Name: "metadata", Value: jsonColumn(session.Metadata)},
		{Name: "created_ts", Value: bigquery.NullTimestamp{Timestamp: session.CreatedAt, Valid: !session.CreatedAt.IsZero()}},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("InsertMentorSessionWithClient: running insert query: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("InsertMentorSessionWithClient: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("InsertMentorSessionWithClient: job error: %w", err)
	}

	return nil
}

// ListMentorSessions retrieves a user's recent mentor sessions, newest first.
func ListMentorSessions(ctx context.Context, userID string, limit int) ([]*mentor.Session, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("ListMentorSessions: creating client: %w", err)
	}
	defer client.Close()

	return ListMentorSessionsWithClient(ctx, client, userID, limit)
}

// ListMentorSessionsWithClient retrieves session summaries using the provided
// BigQuery client. The stored dataset and analysis snapshots are not
// rehydrated; listings only need the exchange itself.
func ListMentorSessionsWithClient(ctx context.Context, client *bigquery.Client, userID string, limit int) ([]*mentor.Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("ListMentorSessionsWithClient: user_id cannot be empty")
	}
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT session_id, user_id, question, mentor_response, model, created_ts
		FROM `+"`%s.%s.mentor_sessions`"+`
		WHERE user_id = @userID
		ORDER BY created_ts DESC
		LIMIT @limit
	`, projectID, datasetID)

	q := client.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "userID", Value: userID},
		{Name: "limit", Value: int64(limit)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListMentorSessionsWithClient: reading query: %w", err)
	}

	var sessions []*mentor.Session
	for {
		var row MentorSessionRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListMentorSessionsWithClient: iterating: %w", err)
		}
		sessions = append(sessions, &mentor.Session{
			SessionID:      row.SessionID,
			UserID:         orEmpty(row.UserID),
			Question:       orEmpty(row.Question),
			MentorResponse: orEmpty(row.MentorResponse),
			Model:          orEmpty(row.Model),
			CreatedAt:      nullTime(row.CreatedTS),
		})
	}

	return sessions, nil
}

// jsonColumn marshals a snapshot for a JSON column, NULL when absent or
// unmarshalable.
func jsonColumn(v interface{}) bigquery.NullJSON {
	if v == nil {
		return bigquery.NullJSON{Valid: false}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return bigquery.NullJSON{Valid: false}
	}
	return bigquery.NullJSON{JSONVal: string(raw), Valid: true}
}

func orEmpty(v bigquery.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.StringVal
}
