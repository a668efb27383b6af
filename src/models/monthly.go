package models

// MonthLabel is the grouping key format for monthly aggregation, e.g. "Mar 2024".
const MonthLabel = "Jan 2006"

// AggregateMonthly folds transactions into per-month income/expense buckets.
// Buckets are emitted in the order their month is first seen, so callers that
// pass transactions ordered ascending by date get chronological buckets.
func AggregateMonthly(txns []Transaction) []MonthlyBucket {
	index := make(map[string]int)
	buckets := make([]MonthlyBucket, 0, len(txns))

	for _, txn := range txns {
		label := txn.Date.Format(MonthLabel)
		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, MonthlyBucket{Month: label})
		}
		switch txn.Type {
		case TypeIncome:
			buckets[i].Income = buckets[i].Income.Add(txn.Amount)
		case TypeExpense:
			buckets[i].Expense = buckets[i].Expense.Add(txn.Amount)
		}
	}

	return buckets
}
