// Package session реализует хранилище учетных данных: вход, выход,
// обновление токенов и сохранение состояния сессии в постоянном хранилище.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"connectx/internal/connectx/app/dto"
	"connectx/internal/connectx/client"
	storagePorts "connectx/internal/connectx/ports/storage"
	"connectx/pkg/logger"
)

// Константы для логирования.
const (
	LogSessionLogin       = "session: login"
	LogSessionRegister    = "session: register"
	LogSessionLogout      = "session: logout"
	LogSessionRefresh     = "session: refreshing tokens" // nolint:gosec
	LogSessionRestored    = "session: restored from storage"
	LogSessionTenantFetch = "session: fetching tenant details"

	ErrorPersistFailed     = "failed to persist session state"
	ErrorRemoveStateFailed = "failed to remove persisted session state"
	ErrorTenantFetchFailed = "failed to fetch tenant details"
)

// Ошибки хранилища учетных данных.
var (
	// ErrInvalidServerResponse возвращается, когда ответ бэкенда
	// не содержит обязательных полей токенов или пользователя.
	ErrInvalidServerResponse = errors.New("invalid response from server")
	// ErrNotAuthenticated возвращается при попытке обновить токены
	// анонимной сессии.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// StorageKey - ключ, под которым состояние сессии сохраняется в хранилище.
const StorageKey = "auth-storage"

// storageVersion - версия формата сохраняемого состояния.
const storageVersion = 1

// Конечные точки аутентификации.
const (
	endpointLogin    = "auth/login/"
	endpointRefresh  = "auth/token/refresh/"
	endpointRegister = "users/"
	endpointTenantMe = "tenants/me/"
)

// State содержит учетные данные и снимки данных пользователя и арендатора.
type State struct {
	AccessToken     string      `json:"accessToken"`
	RefreshToken    string      `json:"refreshToken"`
	User            *dto.User   `json:"user,omitempty"`
	Tenant          *dto.Tenant `json:"tenant,omitempty"`
	IsAuthenticated bool        `json:"isAuthenticated"`
}

// persistedState - формат записи состояния в постоянном хранилище.
type persistedState struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

// Store хранит состояние сессии и выполняет операции над ней.
// Одновременно действует не более одного валидного access токена;
// обновление заменяет его атомарно под мьютексом.
type Store struct {
	mu      sync.RWMutex
	state   State
	client  *client.Client
	storage storagePorts.Storage

	// refreshGroup гарантирует, что конкурентные обновления токена
	// разделяют один запрос к бэкенду.
	refreshGroup singleflight.Group

	// refreshBuffer - запас до истечения токена, при котором
	// EnsureValidToken обновляет токен заранее.
	refreshBuffer time.Duration
}

// NewStore создает хранилище учетных данных поверх API клиента
// и постоянного хранилища.
func NewStore(apiClient *client.Client, stor storagePorts.Storage, refreshBuffer time.Duration) *Store {
	return &Store{
		client:        apiClient,
		storage:       stor,
		refreshBuffer: refreshBuffer,
	}
}

// Initialize загружает сохраненное состояние сессии. Отсутствующее или
// поврежденное состояние оставляет сессию анонимной.
func (s *Store) Initialize(ctx context.Context) error {
	raw, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("failed to load persisted session: %w", err)
	}
	if raw == "" {
		return nil
	}

	var persisted persistedState
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		logger.Log(ctx).Warn(ctx, "discarding corrupt persisted session", zap.Error(err))
		s.removePersisted(ctx)
		return nil
	}
	if persisted.Version != storageVersion || persisted.State.AccessToken == "" || !persisted.State.IsAuthenticated {
		s.removePersisted(ctx)
		return nil
	}

	s.mu.Lock()
	s.state = persisted.State
	s.mu.Unlock()

	logger.Log(ctx).Info(ctx, LogSessionRestored)
	return nil
}

// Login выполняет вход и атомарно сохраняет учетные данные. Ответ без
// любого из обязательных полей access, refresh, user отклоняется,
// прежнее состояние при любой ошибке не изменяется.
func (s *Store) Login(ctx context.Context, email, password string) (*dto.User, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogSessionLogin)

	raw, err := s.client.Request(ctx, http.MethodPost, endpointLogin, nil,
		dto.LoginRequest{Email: email, Password: password},
		client.WithoutAuth(), client.WithoutCache())
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	var resp dto.LoginResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidServerResponse, err)
	}
	if resp.Access == "" || resp.Refresh == "" || resp.User == nil {
		return nil, ErrInvalidServerResponse
	}

	s.mu.Lock()
	s.state = State{
		AccessToken:     resp.Access,
		RefreshToken:    resp.Refresh,
		User:            resp.User,
		IsAuthenticated: true,
	}
	s.mu.Unlock()
	s.persist(ctx)

	// Данные арендатора вспомогательны: неудача не отменяет вход.
	if err := s.FetchTenantDetails(ctx); err != nil {
		log.Warn(ctx, ErrorTenantFetchFailed, zap.Error(err))
	}

	return resp.User, nil
}

// Register регистрирует нового пользователя. Если бэкенд возвращает пару
// токенов вместе с пользователем, сессия сразу становится аутентифицированной.
func (s *Store) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.User, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogSessionRegister)

	raw, err := s.client.Request(ctx, http.MethodPost, endpointRegister, nil, req,
		client.WithoutAuth(), client.WithoutCache())
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	var resp dto.LoginResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidServerResponse, err)
	}

	if resp.Access != "" && resp.Refresh != "" && resp.User != nil {
		s.mu.Lock()
		s.state = State{
			AccessToken:     resp.Access,
			RefreshToken:    resp.Refresh,
			User:            resp.User,
			IsAuthenticated: true,
		}
		s.mu.Unlock()
		s.persist(ctx)
		return resp.User, nil
	}

	// Бэкенд может возвращать только созданного пользователя.
	var user dto.User
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		return nil, ErrInvalidServerResponse
	}
	return &user, nil
}

// RefreshAccessToken обменивает refresh токен на новый access токен.
// Конкурентные вызовы разделяют один выполняющийся запрос. Любая неудача
// обновления - условие полного выхода: состояние и хранилище очищаются.
func (s *Store) RefreshAccessToken(ctx context.Context) (string, error) {
	token, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		log := logger.Log(ctx)
		log.Info(ctx, LogSessionRefresh)

		s.mu.RLock()
		refreshToken := s.state.RefreshToken
		s.mu.RUnlock()

		if refreshToken == "" {
			return nil, ErrNotAuthenticated
		}

		raw, reqErr := s.client.Request(ctx, http.MethodPost, endpointRefresh, nil,
			dto.RefreshRequest{Refresh: refreshToken},
			client.WithoutAuth(), client.WithoutCache())
		if reqErr != nil {
			s.clear(ctx)
			return nil, fmt.Errorf("token refresh failed: %w", reqErr)
		}

		var resp dto.RefreshResponse
		if unmarshalErr := json.Unmarshal(raw, &resp); unmarshalErr != nil || resp.Access == "" {
			s.clear(ctx)
			return nil, ErrInvalidServerResponse
		}

		s.mu.Lock()
		s.state.AccessToken = resp.Access
		if resp.Refresh != "" {
			s.state.RefreshToken = resp.Refresh
		}
		s.mu.Unlock()
		s.persist(ctx)

		return resp.Access, nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

// EnsureValidToken возвращает текущий access токен, обновляя его заранее,
// когда известный срок действия истекает в пределах refreshBuffer.
// Для анонимной сессии возвращается пустая строка.
func (s *Store) EnsureValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	token := s.state.AccessToken
	authenticated := s.state.IsAuthenticated
	s.mu.RUnlock()

	if !authenticated || token == "" {
		return "", nil
	}

	if s.refreshBuffer > 0 && tokenExpiresWithin(token, s.refreshBuffer) {
		refreshed, err := s.RefreshAccessToken(ctx)
		if err != nil {
			// Сессия уже очищена; запрос уйдет без токена и получит 401.
			logger.Log(ctx).Warn(ctx, "proactive token refresh failed", zap.Error(err))
			return "", nil
		}
		return refreshed, nil
	}

	return token, nil
}

// Logout очищает учетные данные и удаляет сохраненное состояние.
// Сетевой запрос не выполняется.
func (s *Store) Logout(ctx context.Context) {
	logger.Log(ctx).Info(ctx, LogSessionLogout)
	s.clear(ctx)
}

// FetchTenantDetails загружает данные арендатора текущего пользователя
// и сохраняет их в состоянии сессии.
func (s *Store) FetchTenantDetails(ctx context.Context) error {
	log := logger.Log(ctx)
	log.Debug(ctx, LogSessionTenantFetch)

	tenant, err := client.Do[dto.Tenant](ctx, s.client, http.MethodGet, endpointTenantMe, nil, nil, client.WithoutCache())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorTenantFetchFailed, err)
	}

	s.mu.Lock()
	s.state.Tenant = &tenant
	s.mu.Unlock()
	s.persist(ctx)

	return nil
}

// Snapshot возвращает копию текущего состояния сессии.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated сообщает, аутентифицирована ли сессия.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// clear переводит сессию в анонимное состояние и удаляет сохраненные данные.
func (s *Store) clear(ctx context.Context) {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()
	s.removePersisted(ctx)
}

// persist сохраняет текущее состояние в постоянном хранилище.
// Неудача записи не прерывает операцию: состояние в памяти первично.
func (s *Store) persist(ctx context.Context) {
	s.mu.RLock()
	persisted := persistedState{State: s.state, Version: storageVersion}
	s.mu.RUnlock()

	data, err := json.Marshal(persisted)
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorPersistFailed, zap.Error(err))
		return
	}
	if err := s.storage.Set(ctx, StorageKey, string(data)); err != nil {
		logger.Log(ctx).Warn(ctx, ErrorPersistFailed, zap.Error(err))
	}
}

// removePersisted удаляет сохраненное состояние сессии.
func (s *Store) removePersisted(ctx context.Context) {
	if err := s.storage.Remove(ctx, StorageKey); err != nil {
		logger.Log(ctx).Warn(ctx, ErrorRemoveStateFailed, zap.Error(err))
	}
}
