package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// accountColumns is the SELECT list shared by the account queries; it must
// stay aligned with the AccountRow bigquery tags.
const accountColumns = `
	account_id,
	user_id,
	fip_id,
	fi_data_session_id,
	link_ref_number,
	masked_acc_number,
	account_type,
	account_type_category,
	holder_name,
	nominee,
	ckyc_compliance,
	branch,
	ifsc,
	description,
	compounding_frequency,
	interest_computation,
	interest_on_maturity,
	interest_payout,
	interest_periodic_payout_amount,
	interest_rate,
	principal_amount,
	maturity_amount,
	maturity_date,
	opening_date,
	recurring_amount,
	recurring_deposit_day,
	tenure_days,
	tenure_months,
	tenure_years,
	current_value,
	current_balance,
	available_balance,
	currency,
	status,
	credit_limit,
	available_credit,
	current_due,
	total_due_amount,
	due_date,
	loyalty_points,
	created_ts`

// ListUserAccounts retrieves every linked account for a user.
func ListUserAccounts(ctx context.Context, userID string) ([]*AccountRow, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("ListUserAccounts: creating client: %w", err)
	}
	defer client.Close()

	return ListUserAccountsWithClient(ctx, client, userID)
}

// ListUserAccountsWithClient retrieves a user's accounts using the provided
// BigQuery client. Rows come back in insertion order so session grouping in
// the normalizer stays stable.
func ListUserAccountsWithClient(ctx context.Context, client *bigquery.Client, userID string) ([]*AccountRow, error) {
	if userID == "" {
		return nil, fmt.Errorf("ListUserAccountsWithClient: user_id cannot be empty")
	}

	query := fmt.Sprintf(`
		SELECT `+accountColumns+`
		FROM `+"`%s.%s.user_financial_accounts`"+`
		WHERE user_id = @userID
		ORDER BY created_ts
	`, projectID, datasetID)

	q := client.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "userID", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListUserAccountsWithClient: reading query: %w", err)
	}

	var accounts []*AccountRow
	for {
		var row AccountRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListUserAccountsWithClient: iterating: %w", err)
		}
		accounts = append(accounts, &row)
	}

	return accounts, nil
}
