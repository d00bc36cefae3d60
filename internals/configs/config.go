package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	FontPath         string
	FontBoldPath     string
	CORSAllowOrigins string
	SessionTTL       time.Duration
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env 파일이 없어서 시스템 ENV 를 사용합니다")
	} else {
		log.Println("✅ .env 파일 로드 완료!")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		// 세션 토큰 서명용. 운영에서는 반드시 따로 설정할 것.
		JWTSecret = "robotdan-dev-secret"
		log.Println("⚠️ JWT_SECRET 이 비어 있어 개발용 기본값을 사용합니다")
	} else {
		log.Println("✅ JWT_SECRET 로드 완료.")
	}

	FontPath = GetEnv("FONT_PATH")
	FontBoldPath = GetEnv("FONT_BOLD_PATH")
	if FontPath == "" {
		log.Println("⚠️ FONT_PATH 미설정 — 내장 폰트로 대체합니다 (한글 제목이 깨질 수 있음)")
	}

	CORSAllowOrigins = GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")

	ttlMin := GetEnvInt("SESSION_TTL_MIN", 120)
	SessionTTL = time.Duration(ttlMin) * time.Minute
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ %s 값이 숫자가 아닙니다(%q), 기본값 %d 사용", key, v, defaultValue)
		return defaultValue
	}
	return n
}
