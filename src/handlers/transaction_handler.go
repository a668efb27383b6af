package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"fintrack-server/src/db"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
)

// TransactionStore is the persistence contract the handlers need. *sql.Store
// implements it against postgres; tests use an in-memory fake.
type TransactionStore interface {
	Create(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	RecentByUser(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
	ByUserSince(ctx context.Context, userID string, since *time.Time) ([]models.Transaction, error)
}

// CreateTransaction validates and persists a transaction, then evicts the
// user's cached reads. Cache eviction failures never fail the request; the
// persisted row is the source of truth and stale entries expire via TTL.
func CreateTransaction(store TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body: %v", err)
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.UserID = resolveUserID(r, req.UserID)

		txn, err := util.ValidateCreateTransaction(req, time.Now())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		created, err := store.Create(r.Context(), txn)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %s: %v", txn.UserID, err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		// Invalidation only after a successful persist.
		db.InvalidateUserCaches(created.UserID)

		log.Printf("INFO: Created transaction %s for user %s", created.ID, created.UserID)
		writeJSON(w, http.StatusCreated, created)
	}
}

// GetRecentTransactions serves the user's newest transactions, cache-aside:
// a well-formed cached payload is returned as-is, a corrupt one is dropped
// and rebuilt from the store, a miss queries the store and repopulates.
func GetRecentTransactions(store TransactionStore, pageSize int, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := resolveUserID(r, r.URL.Query().Get("userId"))
		if userID == "" {
			writeError(w, http.StatusBadRequest, "missing userId")
			return
		}

		cacheKey := db.RecentCacheKey(userID)
		if payload, found := db.GetCached(cacheKey); found {
			var cached []models.Transaction
			if err := json.Unmarshal([]byte(payload), &cached); err == nil {
				writeJSON(w, http.StatusOK, cached)
				return
			}
			log.Printf("WARN: Dropping corrupt recent cache entry for user %s", userID)
			db.DelCache(cacheKey)
		}

		txns, err := store.RecentByUser(r.Context(), userID, pageSize)
		if err != nil {
			log.Printf("ERROR: Failed to fetch recent transactions for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if txns == nil {
			txns = []models.Transaction{}
		}

		if payload, err := json.Marshal(txns); err == nil {
			db.SetRecentCache(userID, string(payload), ttl)
		}

		writeJSON(w, http.StatusOK, txns)
	}
}

// GetMonthlyTotals serves the income-vs-expense chart data: per-month buckets
// over an optional named time window, cached per (user, filter).
func GetMonthlyTotals(store TransactionStore, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := resolveUserID(r, r.URL.Query().Get("userId"))
		if userID == "" {
			writeError(w, http.StatusBadRequest, "missing userId")
			return
		}

		filter := r.URL.Query().Get("filter")
		if filter == "" {
			filter = util.FilterAllTime
		}
		start, bounded, err := util.PeriodStart(filter, time.Now())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		cacheKey := db.MonthlyCacheKey(userID, filter)
		if payload, found := db.GetCached(cacheKey); found {
			var cached []models.MonthlyBucket
			if err := json.Unmarshal([]byte(payload), &cached); err == nil {
				writeJSON(w, http.StatusOK, cached)
				return
			}
			log.Printf("WARN: Dropping corrupt monthly cache entry for user %s, filter %s", userID, filter)
			db.DelCache(cacheKey)
		}

		var since *time.Time
		if bounded {
			since = &start
		}
		txns, err := store.ByUserSince(r.Context(), userID, since)
		if err != nil {
			log.Printf("ERROR: Failed to fetch transactions for user %s, filter %s: %v", userID, filter, err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		buckets := models.AggregateMonthly(txns)

		if payload, err := json.Marshal(buckets); err == nil {
			db.SetMonthlyCache(userID, filter, string(payload), ttl)
		}

		writeJSON(w, http.StatusOK, buckets)
	}
}

// resolveUserID prefers the identity established by the auth middleware over
// whatever the client put in the query or body.
func resolveUserID(r *http.Request, fallback string) string {
	if userID, ok := r.Context().Value("user_id").(string); ok && userID != "" {
		return userID
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
