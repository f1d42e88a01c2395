package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"
)

const transactionColumns = `
	transaction_id,
	account_id,
	user_id,
	amount,
	mode,
	txn_type,
	narration,
	reference,
	transaction_timestamp,
	value_date,
	balance`

// ListTransactionsThrough retrieves all of a user's transactions for the
// given accounts up to and including the cut-off day.
func ListTransactionsThrough(ctx context.Context, userID string, accountIDs []string, through time.Time) ([]*TransactionRow, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("ListTransactionsThrough: creating client: %w", err)
	}
	defer client.Close()

	return ListTransactionsThroughWithClient(ctx, client, userID, accountIDs, through)
}

// ListTransactionsThroughWithClient retrieves transactions using the provided
// BigQuery client, ordered by timestamp ascending. Timestamps are stored as
// strings in their source formats; rows whose timestamp cannot be cast are
// kept and ordered last so the normalizer can apply its own fallbacks.
func ListTransactionsThroughWithClient(ctx context.Context, client *bigquery.Client, userID string, accountIDs []string, through time.Time) ([]*TransactionRow, error) {
	if userID == "" {
		return nil, fmt.Errorf("ListTransactionsThroughWithClient: user_id cannot be empty")
	}
	if len(accountIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT `+transactionColumns+`
		FROM `+"`%s.%s.account_transactions`"+`
		WHERE user_id = @userID
		  AND account_id IN UNNEST(@accountIDs)
		  AND (
			SAFE_CAST(transaction_timestamp AS TIMESTAMP) IS NULL
			OR DATE(SAFE_CAST(transaction_timestamp AS TIMESTAMP)) <= @throughDate
		  )
		ORDER BY SAFE_CAST(transaction_timestamp AS TIMESTAMP) IS NULL, transaction_timestamp
	`, projectID, datasetID)

	q := client.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "userID", Value: userID},
		{Name: "accountIDs", Value: accountIDs},
		{Name: "throughDate", Value: civil.DateOf(through)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListTransactionsThroughWithClient: reading query: %w", err)
	}

	var txns []*TransactionRow
	for {
		var row TransactionRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListTransactionsThroughWithClient: iterating: %w", err)
		}
		txns = append(txns, &row)
	}

	return txns, nil
}
