package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// refreshMargin is how long before expiry cached credentials are treated
// as stale. Refreshing early keeps an upload from starting with a token
// that dies mid-transfer.
const refreshMargin = 5 * time.Minute

const (
	TokenActive  = "active"
	TokenExpired = "expired"
)

// TokenStatus reports the state of the cached upload credentials.
type TokenStatus struct {
	Status           string  `json:"status"`
	ExpiresInSeconds float64 `json:"expires_in_seconds,omitempty"`
	ExpiryTime       string  `json:"expiry_time,omitempty"`
}

// TokenManager caches temporary credentials from an ICredentialSource and
// refreshes them lazily. All methods are safe for concurrent use; the
// fetch runs under the lock, so a refresh raced by many goroutines results
// in a single Fetch and every caller sees the new credentials.
type TokenManager struct {
	log    *slog.Logger
	source ICredentialSource
	now    func() time.Time

	mu    sync.Mutex
	creds Credentials
	held  bool
}

func NewTokenManager(log *slog.Logger, source ICredentialSource) *TokenManager {
	return &TokenManager{
		log:    log,
		source: source,
		now:    time.Now,
	}
}

// Credentials returns the cached credentials, refreshing them first when
// they are missing, expired, or inside the refresh margin.
func (m *TokenManager) Credentials(ctx context.Context) (Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.freshLocked() {
		return m.creds, nil
	}
	if err := m.refreshLocked(ctx); err != nil {
		return Credentials{}, err
	}
	return m.creds, nil
}

// ForceRefresh fetches new credentials regardless of the cached expiry and
// reports the resulting status.
func (m *TokenManager) ForceRefresh(ctx context.Context) (TokenStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.refreshLocked(ctx); err != nil {
		return m.statusLocked(), err
	}
	return m.statusLocked(), nil
}

// ForceExpire marks the cached credentials as expired without contacting
// the credential source. The next Credentials call triggers a refresh.
func (m *TokenManager) ForceExpire() TokenStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held {
		m.creds.Expiry = m.now()
	}
	m.log.Info("upload credentials force-expired")
	return m.statusLocked()
}

// Status reports whether the cached credentials are still usable.
func (m *TokenManager) Status() TokenStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statusLocked()
}

// Provider adapts the manager to the SDK credentials interface, so an S3
// client consults the cache (and its lazy refresh) on every request.
func (m *TokenManager) Provider() aws.CredentialsProviderFunc {
	return func(ctx context.Context) (aws.Credentials, error) {
		creds, err := m.Credentials(ctx)
		if err != nil {
			return aws.Credentials{}, err
		}
		return aws.Credentials{
			AccessKeyID:     creds.AccessKeyID,
			SecretAccessKey: creds.SecretKey,
			SessionToken:    creds.SessionToken,
			CanExpire:       true,
			Expires:         creds.Expiry,
		}, nil
	}
}

// freshLocked reports whether the cached credentials can still carry a new
// request with the refresh margin as headroom. Callers must hold mu.
func (m *TokenManager) freshLocked() bool {
	return m.held && m.now().Add(refreshMargin).Before(m.creds.Expiry)
}

func (m *TokenManager) refreshLocked(ctx context.Context) error {
	creds, err := m.source.Fetch(ctx)
	if err != nil {
		m.log.Error("credential refresh failed", "error", err)
		return fmt.Errorf("refreshing upload credentials: %w", err)
	}
	m.creds = creds
	m.held = true
	m.log.Info("upload credentials refreshed", "expires_at", creds.Expiry.UTC().Format(time.RFC3339))
	return nil
}

// statusLocked reports "active" strictly on the credential expiry; the
// refresh margin only drives proactive refresh, a token three minutes from
// expiry is stale for new uploads but not yet expired.
func (m *TokenManager) statusLocked() TokenStatus {
	if !m.held || !m.now().Before(m.creds.Expiry) {
		return TokenStatus{Status: TokenExpired}
	}
	return TokenStatus{
		Status:           TokenActive,
		ExpiresInSeconds: m.creds.Expiry.Sub(m.now()).Seconds(),
		ExpiryTime:       m.creds.Expiry.UTC().Format(time.RFC3339),
	}
}
