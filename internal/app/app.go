package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"linguachat/pkg/ai"
	"linguachat/pkg/auth"
	"linguachat/pkg/domain"
	"linguachat/pkg/store"
)

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL     string
	RedisAddr       string
	RedisPassword   string
	JWTSecret       string
	SessionTTL      time.Duration
	GeminiAPIKey    string
	GenerationModel string
	HistoryLimit    int
	HistoryTTL      time.Duration

	// Injectable implementations; defaults are built from the fields above.
	Store     store.Store
	Sessions  store.SessionStore
	History   store.HistoryStore
	Generator ai.TextGenerator
}

// App is the core application service wiring storage, sessions, the bounded
// history window, and the generation client.
type App struct {
	store     store.Store
	sessions  store.SessionStore
	history   store.HistoryStore
	generator ai.TextGenerator
}

// New constructs the application with database-backed storage and a
// Redis-backed history window unless implementations are injected.
func New(cfg Config) (*App, error) {
	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}

	sessionStore := cfg.Sessions
	if sessionStore == nil {
		var revoker store.TokenRevoker
		if strings.TrimSpace(cfg.RedisAddr) != "" {
			revoker = store.NewRedisTokenRevoker(cfg.RedisAddr, cfg.RedisPassword)
		} else {
			revoker = store.NewMemoryTokenRevoker()
		}
		jwtStore, err := store.NewJWTSessionStore(cfg.JWTSecret, cfg.SessionTTL, revoker, store.JWTOptions{})
		if err != nil {
			return nil, fmt.Errorf("init jwt session store: %w", err)
		}
		sessionStore = jwtStore
	}

	historyStore := cfg.History
	if historyStore == nil {
		if strings.TrimSpace(cfg.RedisAddr) != "" {
			historyStore = store.NewRedisHistoryStore(cfg.RedisAddr, cfg.RedisPassword, cfg.HistoryLimit, cfg.HistoryTTL)
		} else {
			historyStore = store.NewMemoryHistoryStore(cfg.HistoryLimit, cfg.HistoryTTL)
		}
	}

	generator := cfg.Generator
	if generator == nil {
		if cfg.GenerationModel == "" {
			return nil, fmt.Errorf("generation model required")
		}
		gemini, err := ai.NewGeminiClient(cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		generator = ai.NewGeminiGenerator(gemini, cfg.GenerationModel)
	}

	return &App{
		store:     dataStore,
		sessions:  sessionStore,
		history:   historyStore,
		generator: generator,
	}, nil
}

// Register creates a user and returns a session token.
func (a *App) Register(email, password string) (domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return domain.User{}, "", ErrEmailAndPasswordRequired
	}
	exists, err := a.store.HasUserEmail(email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return domain.User{}, "", ErrEmailAlreadyExists
	}
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.store.SaveUser(user); err != nil {
		return domain.User{}, "", fmt.Errorf("save user: %w", err)
	}
	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Login validates credentials and returns a session token.
func (a *App) Login(email, password string) (domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return domain.User{}, "", ErrInvalidCredentials
	}
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("lookup user: %w", err)
	}
	if !ok || !auth.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, "", ErrInvalidCredentials
	}
	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// UserFromToken resolves a bearer token to its user. The token must carry a
// valid signature and unexpired claims, and the embedded ID must still
// resolve to a stored user.
func (a *App) UserFromToken(token string) (domain.User, bool) {
	userID, ok, err := a.sessions.GetUserIDByToken(token)
	if err != nil || !ok {
		return domain.User{}, false
	}
	user, ok, err := a.store.GetUserByID(userID)
	if err != nil || !ok {
		return domain.User{}, false
	}
	return user, true
}

// Logout revokes the token until its natural expiry.
func (a *App) Logout(token string) error {
	return a.sessions.DeleteSession(token)
}

// Chat forwards the user's message plus the bounded history window to the
// generation API and returns the first candidate's reply. Both the user turn
// and the model turn are appended to the window and to the transcript.
func (a *App) Chat(ctx context.Context, user domain.User, message, rawTopic string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrMessageRequired
	}
	topic := domain.ParseTopic(rawTopic)

	history, err := a.history.Recent(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}
	userTurn := domain.ChatTurn{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Topic:     topic,
		Role:      domain.RoleUser,
		Text:      message,
		CreatedAt: time.Now().UTC(),
	}
	turns := make([]domain.ChatTurn, 0, len(history)+1)
	turns = append(turns, history...)
	turns = append(turns, userTurn)

	reply, err := a.generator.GenerateChat(ctx, SystemPrompt(topic), turns)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	modelTurn := domain.ChatTurn{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Topic:     topic,
		Role:      domain.RoleModel,
		Text:      reply,
		CreatedAt: time.Now().UTC(),
	}
	for _, turn := range []domain.ChatTurn{userTurn, modelTurn} {
		if err := a.history.Append(ctx, user.ID, turn); err != nil {
			return "", fmt.Errorf("append history: %w", err)
		}
		if err := a.store.AppendTurn(turn); err != nil {
			return "", fmt.Errorf("save turn: %w", err)
		}
	}
	return reply, nil
}

// History returns the user's persisted transcript in chronological order.
func (a *App) History(user domain.User, limit int) ([]domain.ChatTurn, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	turns, err := a.store.ListTurns(user.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	return turns, nil
}
