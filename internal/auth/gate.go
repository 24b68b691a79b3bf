package auth

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/publika-insight/internal/config"
	"github.com/SergeyBogomolovv/publika-insight/internal/entities"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "publika-insight"

var adminLogins = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "publika",
		Subsystem: "admin",
		Name:      "logins_total",
		Help:      "Total number of admin login attempts, by result",
	},
	[]string{"result"},
)

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(adminLogins)
}

// RevocationStore хранит идентификаторы отозванных сессий
type RevocationStore interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// Gate выдает и проверяет сессии единственного администратора
type Gate struct {
	logger       *slog.Logger
	username     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	revoked      RevocationStore
	now          func() time.Time
}

func NewGate(logger *slog.Logger, cfg config.Admin, revoked RevocationStore) (*Gate, error) {
	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
	}

	return &Gate{
		logger:       logger.With(slog.String("service", "auth")),
		username:     cfg.Username,
		passwordHash: hash,
		secret:       []byte(cfg.JWTSecret),
		ttl:          cfg.SessionTTL,
		revoked:      revoked,
		now:          time.Now,
	}, nil
}

// Login проверяет учетные данные и выдает подписанный токен сессии
func (g *Gate) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	// пароль сверяем всегда, чтобы время ответа не зависело от логина
	passErr := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		adminLogins.WithLabelValues("failure").Inc()
		g.logger.Warn("admin login failed", slog.String("username", username))
		return "", entities.ErrInvalidCredentials
	}

	now := g.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   g.username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	adminLogins.WithLabelValues("success").Inc()
	g.logger.Info("admin logged in", slog.String("session_id", claims.ID))
	return token, nil
}

// Logout отзывает сессию, после чего токен больше не проходит Authorize
func (g *Gate) Logout(token string) error {
	claims, err := g.parse(token)
	if err != nil {
		return err
	}
	g.revoked.Set(claims.ID, []byte(claims.Subject))
	g.logger.Info("admin logged out", slog.String("session_id", claims.ID))
	return nil
}

// Authorize возвращает имя администратора, если токен действителен и не отозван
func (g *Gate) Authorize(token string) (string, error) {
	claims, err := g.parse(token)
	if err != nil {
		return "", err
	}
	if _, revoked := g.revoked.Get(claims.ID); revoked {
		return "", fmt.Errorf("%w: session revoked", entities.ErrUnauthorized)
	}
	return claims.Subject, nil
}

func (g *Gate) parse(token string) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", entities.ErrUnauthorized)
	}

	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrUnauthorized, err)
	}

	if claims.Issuer != issuer || claims.Subject != g.username || claims.ID == "" {
		return nil, fmt.Errorf("%w: unexpected claims", entities.ErrUnauthorized)
	}
	return claims, nil
}
