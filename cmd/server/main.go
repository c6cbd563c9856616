package main

import (
	"log"

	"go-resume-coach/internal/ai"
	"go-resume-coach/internal/config"
	"go-resume-coach/internal/convert"
	"go-resume-coach/internal/handlers"
	"go-resume-coach/internal/notify"
	"go-resume-coach/internal/session"
	"go-resume-coach/internal/telegram"
)

func main() {
	// 1. Load config
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	// 2. Remote clients
	chatClient, err := ai.NewClient(cfg.Chat)
	if err != nil {
		log.Fatalf("❌ Chat client error: %v", err)
	}
	converter, err := convert.New(cfg.Convert)
	if err != nil {
		log.Fatalf("❌ Converter error: %v", err)
	}

	// 3. Notifications
	hub := notify.NewHub()
	hub.Start()
	defer hub.Stop()

	// 4. Session state
	sess := session.New(chatClient, converter, hub)

	// 5. Optional Telegram delivery
	var contact handlers.ContactSender
	var reporter handlers.ErrorReporter
	if cfg.Telegram.Enabled() {
		bot, err := telegram.NewBot(cfg.Telegram)
		if err != nil {
			log.Printf("⚠️ Telegram disabled: %v", err)
		} else {
			contact = bot
			reporter = bot
			if err := bot.SendStatus("AI Career Coach server started"); err != nil {
				log.Printf("⚠️ Telegram status message failed: %v", err)
			}
		}
	} else {
		log.Println("ℹ️ Telegram not configured, contact form disabled")
	}

	// 6. Router
	h := handlers.NewHandler(cfg, sess, hub, contact, reporter)
	r, err := handlers.NewRouter(h)
	if err != nil {
		log.Fatalf("❌ Failed to load templates: %v", err)
	}

	log.Printf("🚀 Server listening on port %s (chat provider: %s, model: %s)", cfg.Port, cfg.Chat.Provider, cfg.Chat.Model)
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
