package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"robotdan_backend/internals/configs"
	docservice "robotdan_backend/internals/features/membership/document/service"
	formservice "robotdan_backend/internals/features/membership/form/service"
	middlewares "robotdan_backend/internals/middlewares"
	routes "robotdan_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super fast
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		BodyLimit:             10 * 1024 * 1024, // 증명사진 업로드 여유
	})

	// ⚙️ 기본 + 성능 미들웨어
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + 타이밍
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🗂 세션 저장소 + 만료 세션 reaper
	store := formservice.NewSessionStore(configs.SessionTTL)
	reaperCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	store.StartReaper(reaperCtx, 5*time.Minute)

	// 🖨 문서 합성 파이프라인 (폰트 → 렌더러 → 컴포저)
	fonts, err := docservice.LoadFonts()
	if err != nil {
		log.Fatalf("❌ 폰트 로드 실패: %v", err)
	}
	renderer, err := docservice.NewFormRenderer(fonts)
	if err != nil {
		log.Fatalf("❌ 렌더러 초기화 실패: %v", err)
	}
	composer, err := docservice.NewDocumentComposer(renderer, fonts)
	if err != nil {
		log.Fatalf("❌ 컴포저 초기화 실패: %v", err)
	}

	// ✅ Routes
	routes.SetupRoutes(app, store, composer)

	// 🔒 서버 타임아웃 (문서 합성 여유 포함)
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 60 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
}
