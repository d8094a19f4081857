// workers/profile_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golf-performance-system/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RemoteProfile matches the JSON the profile sync service returns per user.
type RemoteProfile struct {
	ID                string    `json:"id"`
	ExternalID        string    `json:"external_id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	FirstName         *string   `json:"first_name,omitempty"`
	LastName          *string   `json:"last_name,omitempty"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	AccountStatus     string    `json:"account_status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// GetProfileChangesResponse is the top-level structure of the sync service response.
type GetProfileChangesResponse struct {
	Users []RemoteProfile `json:"users"`
}

type ProfileSyncWorker struct {
	db           *gorm.DB
	interval     time.Duration
	baseURL      string // e.g., "http://localhost:8500"
	endpointPath string // e.g., "/api/v1/public/profiles"
	serviceToken string
	httpClient   *http.Client
}

// NewProfileSyncWorker requires the sync service URL and this service's own token.
func NewProfileSyncWorker(db *gorm.DB, syncServiceBaseURL, endpointPath, serviceToken string) *ProfileSyncWorker {
	return &ProfileSyncWorker{
		db:           db,
		interval:     1 * time.Minute,
		baseURL:      syncServiceBaseURL,
		endpointPath: endpointPath,
		serviceToken: serviceToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (w *ProfileSyncWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Profile Sync Worker (sync-service → golf_users)…")
	go w.run(ctx)
}

func (w *ProfileSyncWorker) run(ctx context.Context) {
	// Initial sync (backfill if needed) - sync from the beginning of time
	if err := w.syncBatch(ctx, time.Time{}); err != nil {
		log.Printf("⚠️ Initial profile sync failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Incremental syncs reuse the last update time from our local table
			lastSyncTime := w.getLastSyncTime()
			if err := w.syncBatch(ctx, lastSyncTime); err != nil {
				log.Printf("❌ Profile sync batch failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ Profile Sync Worker stopped")
			return
		}
	}
}

// getLastSyncTime finds the most recent UpdatedAt from the local golf_users table.
func (w *ProfileSyncWorker) getLastSyncTime() time.Time {
	var lastTime time.Time
	err := w.db.Raw("SELECT MAX(updated_at) FROM golf_users WHERE deleted_at IS NULL").Scan(&lastTime).Error
	if err != nil || lastTime.IsZero() {
		return time.Unix(0, 0) // Fallback to epoch if no records or error
	}
	return lastTime
}

// syncBatch fetches profile changes from the sync service and upserts them locally.
func (w *ProfileSyncWorker) syncBatch(ctx context.Context, since time.Time) error {
	sinceStr := since.UTC().Format(time.RFC3339) // Normalize to UTC for consistency
	log.Printf("[SYNC] 📡 Fetching profile changes since=%s (local=%v)", sinceStr, since)

	base, err := url.Parse(w.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base sync service URL '%s': %w", w.baseURL, err)
	}

	// Safely join base URL and endpoint path (handles trailing/leading slashes)
	endpointURL := base.JoinPath(w.endpointPath)

	q := endpointURL.Query()
	q.Set("since", sinceStr)
	endpointURL.RawQuery = q.Encode()
	finalURL := endpointURL.String()

	log.Printf("[SYNC] ➡️  GET %s", finalURL)

	req, err := http.NewRequestWithContext(ctx, "GET", finalURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request to %s: %w", finalURL, err)
	}

	// Authenticate with the dedicated service token
	req.Header.Set("X-Service-Token", w.serviceToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		log.Printf("[SYNC] ❌ Request to %s failed: %v", finalURL, err)
		return fmt.Errorf("HTTP request to sync service failed: %w", err)
	}
	defer func() {
		// Always drain & close to prevent connection leaks
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		// Read limited error body (avoid massive payloads)
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if readErr != nil {
			log.Printf("[SYNC] ⚠️ Failed to read error body from %s: %v", finalURL, readErr)
		}
		errMsg := string(body)
		log.Printf("[SYNC] ❌ Sync service returned %d for %s: %s", resp.StatusCode, finalURL, errMsg)
		return fmt.Errorf("sync service non-200 response: %d, %s", resp.StatusCode, errMsg)
	}

	var response GetProfileChangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Printf("[SYNC] ❌ Failed to decode JSON response from %s: %v", finalURL, err)
		return fmt.Errorf("failed to decode sync service response: %w", err)
	}

	if len(response.Users) == 0 {
		log.Printf("[SYNC] ✅ No profile changes received since %s", sinceStr)
		return nil
	}

	log.Printf("[SYNC] 📥 Processing %d profile(s) from sync service…", len(response.Users))

	var upsertCount, errorCount int
	for _, remote := range response.Users {
		localUser := models.GolfUser{
			ExternalUserID: remote.ExternalID,
			Username:       remote.Username,
			Email:          remote.Email,
			FirstName:      remote.FirstName,
			LastName:       remote.LastName,
			AvatarURL:      remote.ProfilePictureURL,
			CreatedAt:      remote.CreatedAt,
			UpdatedAt:      remote.UpdatedAt,
		}

		if err := w.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"username", "email", "first_name", "last_name",
				"avatar_url", "created_at", "updated_at",
			}),
		}).Create(&localUser).Error; err != nil {
			errorCount++
			log.Printf("[SYNC] ⚠️ Failed to upsert golf_user (external_id=%q, username=%q): %v",
				remote.ExternalID, remote.Username, err)
		} else {
			upsertCount++
		}
	}

	// Determine latest update for logging
	var latestUpdate time.Time
	var latestUserID string
	for _, u := range response.Users {
		if u.UpdatedAt.After(latestUpdate) {
			latestUpdate = u.UpdatedAt
			latestUserID = u.ExternalID
		}
	}

	if latestUpdate.IsZero() {
		log.Printf("[SYNC] ✅ Synced %d profile(s) (0 updates detected in timestamps)", len(response.Users))
	} else {
		log.Printf("[SYNC] ✅ Synced %d profiles (%d upserted, %d errors). Latest: external_id=%s, updated_at=%v",
			len(response.Users), upsertCount, errorCount, latestUserID, latestUpdate.Format(time.RFC3339))
	}

	return nil
}
