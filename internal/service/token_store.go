package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-healthcare-portal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// TokenStore remembers which issued token ids are still valid. A token whose
// id is missing has been revoked or has expired.
type TokenStore interface {
	Store(ctx context.Context, kind jwt.TokenType, userID uuid.UUID, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, kind jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error)
	Revoke(ctx context.Context, kind jwt.TokenType, userID uuid.UUID, tokenID string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

func tokenKey(kind jwt.TokenType, userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s_token:%s:%s", kind, userID.String(), tokenID)
}

func userTokenPatterns(userID uuid.UUID) []string {
	return []string{
		fmt.Sprintf("%s_token:%s:*", jwt.AccessToken, userID.String()),
		fmt.Sprintf("%s_token:%s:*", jwt.RefreshToken, userID.String()),
	}
}

type redisTokenStore struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisTokenStore(client *redis.Client, log *logrus.Logger) TokenStore {
	return &redisTokenStore{client: client, log: log}
}

func (s *redisTokenStore) Store(ctx context.Context, kind jwt.TokenType, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, tokenKey(kind, userID, tokenID), "valid", ttl).Err(); err != nil {
		s.log.Warnf("Failed to store %s token in Redis: %+v", kind, err)
		return err
	}
	return nil
}

func (s *redisTokenStore) Exists(ctx context.Context, kind jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, tokenKey(kind, userID, tokenID)).Result()
	if err != nil {
		s.log.Warnf("Failed to check token validity: %+v", err)
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, kind jwt.TokenType, userID uuid.UUID, tokenID string) error {
	if err := s.client.Del(ctx, tokenKey(kind, userID, tokenID)).Err(); err != nil {
		s.log.Warnf("Failed to delete %s token: %+v", kind, err)
		return err
	}
	return nil
}

func (s *redisTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for _, pattern := range userTokenPatterns(userID) {
		keys, err := s.client.Keys(ctx, pattern).Result()
		if err != nil {
			s.log.Warnf("Failed to get token keys: %+v", err)
			return err
		}
		if len(keys) == 0 {
			continue
		}
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			s.log.Warnf("Failed to delete tokens: %+v", err)
			return err
		}
	}
	return nil
}

// memoryTokenStore is used when no Redis host is configured.
type memoryTokenStore struct {
	cache *cache.Cache
}

func NewMemoryTokenStore(cleanupInterval time.Duration) TokenStore {
	return &memoryTokenStore{cache: cache.New(cache.NoExpiration, cleanupInterval)}
}

func (s *memoryTokenStore) Store(ctx context.Context, kind jwt.TokenType, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	s.cache.Set(tokenKey(kind, userID, tokenID), "valid", ttl)
	return nil
}

func (s *memoryTokenStore) Exists(ctx context.Context, kind jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	_, ok := s.cache.Get(tokenKey(kind, userID, tokenID))
	return ok, nil
}

func (s *memoryTokenStore) Revoke(ctx context.Context, kind jwt.TokenType, userID uuid.UUID, tokenID string) error {
	s.cache.Delete(tokenKey(kind, userID, tokenID))
	return nil
}

func (s *memoryTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for _, pattern := range userTokenPatterns(userID) {
		prefix := strings.TrimSuffix(pattern, "*")
		for key := range s.cache.Items() {
			if strings.HasPrefix(key, prefix) {
				s.cache.Delete(key)
			}
		}
	}
	return nil
}
