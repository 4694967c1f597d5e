package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu    sync.Mutex
	calls int
	creds Credentials
	err   error
	delay time.Duration
}

func (f *fakeSource) Fetch(context.Context) (Credentials, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return Credentials{}, f.err
	}
	return f.creds, nil
}

func (f *fakeSource) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func freshCredentials(expiry time.Time) Credentials {
	return Credentials{
		AccessKeyID:  "test-key",
		SecretKey:    "test-secret",
		SessionToken: "test-token",
		Expiry:       expiry,
	}
}

func seedCredentials(m *TokenManager, expiry time.Time) {
	m.creds = Credentials{
		AccessKeyID:  "old-key",
		SecretKey:    "old-secret",
		SessionToken: "old-token",
		Expiry:       expiry,
	}
	m.held = true
}

func newTestManager(source ICredentialSource) *TokenManager {
	return NewTokenManager(logs.GetLoggerFromLevel(slog.LevelDebug), source)
}

func TestTokenManager_Credentials_FetchesOnFirstUse(t *testing.T) {
	req := require.New(t)
	source := &fakeSource{creds: freshCredentials(time.Now().Add(time.Hour))}
	manager := newTestManager(source)

	// When: Asking for credentials with an empty cache
	creds, err := manager.Credentials(context.Background())

	// Then: The source is consulted exactly once
	req.NoError(err)
	req.Equal("test-key", creds.AccessKeyID)
	req.Equal("test-token", creds.SessionToken)
	req.Equal(1, source.count())
}

func TestTokenManager_Credentials_SkipsRefreshWhileValid(t *testing.T) {
	req := require.New(t)
	source := &fakeSource{creds: freshCredentials(time.Now().Add(time.Hour))}
	manager := newTestManager(source)

	// Given: Cached credentials that stay valid for another 30 minutes
	seedCredentials(manager, time.Now().Add(30*time.Minute))

	// When: Asking for credentials
	creds, err := manager.Credentials(context.Background())

	// Then: The cache answers, the source is never called
	req.NoError(err)
	req.Equal("old-key", creds.AccessKeyID)
	req.Zero(source.count())
}

func TestTokenManager_Credentials_RefreshesInsideMargin(t *testing.T) {
	req := require.New(t)
	source := &fakeSource{creds: freshCredentials(time.Now().Add(time.Hour))}
	manager := newTestManager(source)

	// Given: Cached credentials expiring in 3 minutes, inside the 5 minute margin
	seedCredentials(manager, time.Now().Add(3*time.Minute))

	// When: Asking for credentials
	creds, err := manager.Credentials(context.Background())

	// Then: A refresh replaced them before handing them out
	req.NoError(err)
	req.Equal("test-key", creds.AccessKeyID)
	req.Equal(1, source.count())
}

func TestTokenManager_Credentials_SingleFlightUnderConcurrency(t *testing.T) {
	req := require.New(t)
	source := &fakeSource{
		creds: freshCredentials(time.Now().Add(time.Hour)),
		delay: 50 * time.Millisecond,
	}
	manager := newTestManager(source)

	// Given: Expired cached credentials and 5 goroutines racing for new ones
	seedCredentials(manager, time.Now().Add(-5*time.Minute))

	type outcome struct {
		creds Credentials
		err   error
	}
	var wg sync.WaitGroup
	start := make(chan struct{})
	results := make(chan outcome, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			creds, err := manager.Credentials(context.Background())
			results <- outcome{creds: creds, err: err}
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	// Then: The source was hit exactly once and everyone got the new keys
	req.Equal(1, source.count())
	for got := range results {
		req.NoError(got.err)
		req.Equal("test-key", got.creds.AccessKeyID)
	}
}

func TestTokenManager_Status_ActiveReportsExpiry(t *testing.T) {
	req := require.New(t)
	manager := newTestManager(&fakeSource{})

	// Given: A frozen clock and credentials valid for 30 more minutes
	ref := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	manager.now = func() time.Time { return ref }
	seedCredentials(manager, ref.Add(30*time.Minute))

	// When: Reading the status
	status := manager.Status()

	// Then: Active, with the remaining lifetime and the expiry instant
	req.Equal(TokenActive, status.Status)
	req.InDelta(1800, status.ExpiresInSeconds, 0.001)
	req.Equal("2026-03-01T11:00:00Z", status.ExpiryTime)
}

func TestTokenManager_Status_ExpiredWithoutCredentials(t *testing.T) {
	req := require.New(t)
	manager := newTestManager(&fakeSource{})

	status := manager.Status()

	req.Equal(TokenExpired, status.Status)
	req.Zero(status.ExpiresInSeconds)
	req.Empty(status.ExpiryTime)
}

func TestTokenManager_Status_InsideMarginStillActive(t *testing.T) {
	req := require.New(t)
	manager := newTestManager(&fakeSource{})

	// Given: Credentials 3 minutes from expiry. The margin makes them stale
	// for new requests, but they have not expired yet.
	ref := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	manager.now = func() time.Time { return ref }
	seedCredentials(manager, ref.Add(3*time.Minute))

	status := manager.Status()

	req.Equal(TokenActive, status.Status)
	req.InDelta(180, status.ExpiresInSeconds, 0.001)
}

func TestTokenManager_ForceExpire_TriggersRefreshOnNextUse(t *testing.T) {
	req := require.New(t)
	source := &fakeSource{creds: freshCredentials(time.Now().Add(time.Hour))}
	manager := newTestManager(source)

	// Given: Perfectly valid cached credentials
	seedCredentials(manager, time.Now().Add(time.Hour))

	// When: Force-expiring them
	status := manager.ForceExpire()

	// Then: The status flips and the next use refreshes
	req.Equal(TokenExpired, status.Status)

	creds, err := manager.Credentials(context.Background())
	req.NoError(err)
	req.Equal("test-key", creds.AccessKeyID)
	req.Equal(1, source.count())
}

func TestTokenManager_ForceRefresh_FetchesEvenWhileValid(t *testing.T) {
	req := require.New(t)
	source := &fakeSource{creds: freshCredentials(time.Now().Add(2 * time.Hour))}
	manager := newTestManager(source)

	// Given: Valid cached credentials that would not refresh on their own
	seedCredentials(manager, time.Now().Add(time.Hour))

	// When: Forcing a refresh
	status, err := manager.ForceRefresh(context.Background())

	// Then: The source is hit and the status carries the new expiry
	req.NoError(err)
	req.Equal(1, source.count())
	req.Equal(TokenActive, status.Status)
	req.Greater(status.ExpiresInSeconds, float64(3600))
}

func TestTokenManager_ForceRefresh_SourceFailure(t *testing.T) {
	req := require.New(t)
	source := &fakeSource{err: fmt.Errorf("identity pool unreachable")}
	manager := newTestManager(source)

	status, err := manager.ForceRefresh(context.Background())

	req.ErrorContains(err, "refreshing upload credentials")
	req.Equal(TokenExpired, status.Status)
}

func TestTokenManager_Provider_AdaptsCredentials(t *testing.T) {
	req := require.New(t)
	manager := newTestManager(&fakeSource{})

	// Given: Valid cached credentials
	expiry := time.Now().Add(time.Hour)
	seedCredentials(manager, expiry)

	// When: Retrieving through the SDK provider adapter
	awsCreds, err := manager.Provider().Retrieve(context.Background())

	// Then: Every field maps across, including the expiry
	req.NoError(err)
	req.Equal("old-key", awsCreds.AccessKeyID)
	req.Equal("old-secret", awsCreds.SecretAccessKey)
	req.Equal("old-token", awsCreds.SessionToken)
	req.True(awsCreds.CanExpire)
	req.Equal(expiry, awsCreds.Expires)
}
