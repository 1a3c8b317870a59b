package handler

import (
	"strings"
	"sync"

	"github.com/Khushiyant/nibtara/internal/auth/domain"
	apperrors "github.com/Khushiyant/nibtara/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const accountLocalKey = "account"

// RequireAuth resolves the bearer access token to an account and stores it for later handlers.
func (h *AuthHandler) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return apperrors.ErrAuthenticationRequired
		}

		account, err := h.auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}

		c.Locals(accountLocalKey, account)
		return c.Next()
	}
}

// RequireRole admits only accounts holding one of roles. It must run after RequireAuth.
func (h *AuthHandler) RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account := currentAccount(c)
		if account == nil {
			return apperrors.ErrAuthenticationRequired
		}
		for _, role := range roles {
			if account.Role == role {
				return c.Next()
			}
		}
		return apperrors.ErrRoleRequired
	}
}

func currentAccount(c *fiber.Ctx) *domain.Account {
	account, _ := c.Locals(accountLocalKey).(*domain.Account)
	return account
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	log      logrus.FieldLogger
}

func NewRateLimiter(requestsPerSecond float64, burst int, log logrus.FieldLogger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		log:      log,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.limiters[key]
	if !ok {
		// Bound memory; active clients simply get a fresh bucket.
		if len(rl.limiters) >= 10000 {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		l = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = l
	}
	return l
}

func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl.limiter(c.IP()).Allow() {
			return c.Next()
		}
		rl.log.WithFields(logrus.Fields{
			"ip":   c.IP(),
			"path": c.Path(),
		}).Warn("rate limit exceeded")
		c.Set(fiber.HeaderRetryAfter, "1")
		return apperrors.ErrTooManyRequests
	}
}
