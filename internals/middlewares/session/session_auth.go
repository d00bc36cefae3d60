package session

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Locals 키 — 컨트롤러에서 세션 ID 를 꺼낼 때 사용
const LocSessionID = "session_id"

// IssueSessionToken — 신청 세션용 bearer 토큰 발급 (HMAC)
func IssueSessionToken(secret string, sessionID uuid.UUID, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// RequireSession — Authorization: Bearer xxx 검증 후 세션 ID 를 Locals 에 적재
func RequireSession(secret string) fiber.Handler {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		panic("RequireSession: secret 은 필수입니다")
	}

	return func(c *fiber.Ctx) error {
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "세션 토큰이 없습니다")
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "잘못된 서명 방식")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "세션 토큰이 유효하지 않습니다")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "세션 토큰 클레임이 유효하지 않습니다")
		}

		sidStr, _ := claims["sid"].(string)
		sid, err := uuid.Parse(sidStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "세션 ID 가 유효하지 않습니다")
		}

		c.Locals(LocSessionID, sid)
		return c.Next()
	}
}
