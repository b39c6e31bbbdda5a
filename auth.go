package client

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campusjam/campusjam-client/internal/token"
)

// AuthStatus is the lifecycle state of the authentication session.
type AuthStatus int

const (
	// AuthLoading means Restore has not settled yet; dependents should
	// suspend until it does.
	AuthLoading AuthStatus = iota
	// AuthAuthenticated means a token and user profile are established.
	AuthAuthenticated
	// AuthAnonymous means no valid session exists.
	AuthAnonymous
)

func (s AuthStatus) String() string {
	switch s {
	case AuthLoading:
		return "loading"
	case AuthAuthenticated:
		return "authenticated"
	case AuthAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// AuthSession is a snapshot of "who is logged in". Exactly one logical
// session exists per process; it is owned by an AuthManager and read by
// everything else.
type AuthSession struct {
	Token  string
	User   *User
	Status AuthStatus
}

// TokenStore abstracts bearer-token persistence. See NewFileTokenStore and
// NewMemoryTokenStore.
type TokenStore = token.Store

// NewFileTokenStore persists the token at path (empty means
// $HOME/.campusjam/token) with owner-only permissions.
func NewFileTokenStore(path string) (TokenStore, error) { return token.NewFileStore(path) }

// NewMemoryTokenStore keeps the token in process memory only.
func NewMemoryTokenStore() TokenStore { return token.NewMemoryStore() }

// AuthManager is the single source of truth for the authentication session.
// It owns the token lifecycle and pushes the token into the Client on
// login/logout; consumers observe transitions via Subscribe.
type AuthManager struct {
	api   *Client
	store TokenStore
	log   zerolog.Logger

	restoreOnce sync.Once

	mu      sync.Mutex
	session AuthSession
	subs    []chan AuthSession
}

// NewAuthManager constructs the manager in the Loading state. Pass
// zerolog.Nop() to silence logging.
func NewAuthManager(api *Client, store TokenStore, logger zerolog.Logger) *AuthManager {
	return &AuthManager{
		api:     api,
		store:   store,
		log:     logger.With().Str("component", "auth").Logger(),
		session: AuthSession{Status: AuthLoading},
	}
}

// Restore settles the session from the persisted token. It is idempotent:
// the token is decoded locally (signature unverified, advisory only) for the
// user ID, then the profile is fetched with the token attached. Any failure
// fails closed: the token is discarded and the session becomes Anonymous.
func (m *AuthManager) Restore(ctx context.Context) AuthSession {
	m.restoreOnce.Do(func() { m.runRestore(ctx) })
	return m.Session()
}

func (m *AuthManager) runRestore(ctx context.Context) {
	stored, err := m.store.Load()
	if err != nil {
		m.log.Warn().Err(err).Msg("token load failed, starting anonymous")
		stored = ""
	}
	if stored == "" {
		m.settle(AuthSession{Status: AuthAnonymous})
		return
	}

	claims, err := token.Decode(stored)
	if err != nil {
		m.log.Warn().Err(err).Msg("persisted token malformed, discarding")
		m.discard()
		return
	}

	// Attach the token before the profile fetch; the server is the
	// verifying authority.
	m.api.setToken(stored)
	user, err := m.api.GetUser(ctx, claims.UserID)
	if err != nil {
		m.log.Warn().Err(err).Str("user_id", claims.UserID).Msg("session restore failed, discarding token")
		m.discard()
		return
	}

	m.log.Info().Str("user_id", user.ID).Msg("session restored")
	m.settle(AuthSession{Token: stored, User: user, Status: AuthAuthenticated})
}

// discard clears persisted and in-memory token state and settles Anonymous.
func (m *AuthManager) discard() {
	if err := m.store.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("token clear failed")
	}
	m.api.clearToken()
	m.settle(AuthSession{Status: AuthAnonymous})
}

// Login establishes an authenticated session from a login response. The new
// state is visible to all consumers immediately.
func (m *AuthManager) Login(user User, tok string) {
	if err := m.store.Save(tok); err != nil {
		m.log.Warn().Err(err).Msg("token persist failed")
	}
	m.api.setToken(tok)
	m.log.Info().Str("user_id", user.ID).Msg("logged in")
	m.settle(AuthSession{Token: tok, User: &user, Status: AuthAuthenticated})
}

// Logout clears the persisted token and returns to Anonymous. It does not
// navigate; callers are responsible for redirecting.
func (m *AuthManager) Logout() {
	m.log.Info().Msg("logged out")
	m.discard()
}

// Session returns the current session snapshot.
func (m *AuthManager) Session() AuthSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// UserID returns the authenticated user's ID, or "" when not authenticated.
func (m *AuthManager) UserID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Status != AuthAuthenticated || m.session.User == nil {
		return ""
	}
	return m.session.User.ID
}

// Subscribe returns a channel that carries session snapshots on every
// transition. The channel holds only the latest snapshot: a slow consumer
// sees the newest state, not the full history.
func (m *AuthManager) Subscribe() <-chan AuthSession {
	ch := make(chan AuthSession, 1)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	ch <- m.session
	m.mu.Unlock()
	return ch
}

func (m *AuthManager) settle(s AuthSession) {
	m.mu.Lock()
	m.session = s
	for _, ch := range m.subs {
		// Coalesce: drop the stale snapshot if unconsumed.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
	m.mu.Unlock()
}
