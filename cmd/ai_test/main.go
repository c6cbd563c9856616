package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go-resume-coach/internal/ai"
	"go-resume-coach/internal/apperr"
	"go-resume-coach/internal/config"
	"go-resume-coach/internal/convert"
	"go-resume-coach/internal/models"
	"go-resume-coach/internal/session"
	"go-resume-coach/internal/upload"
)

// Smoke test against the real services: upload one resume, ask one question.
func main() {
	resumePath := flag.String("resume", "", "path to a .pdf or .txt resume (optional)")
	question := flag.String("q", "Please analyze my resume and suggest improvements", "question for the coach")
	title := flag.String("title", "Senior Go Backend Developer", "target job title")
	level := flag.String("level", "Senior", "experience level")
	requirements := flag.String("requirements", `- 3+ years of experience with Go (Golang)
- Experience with Kafka and Redis
- Strong knowledge of PostgreSQL and microservices
- DevOps knowledge (Docker, CI/CD)`, "job requirements")
	flag.Parse()

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	client, err := ai.NewClient(cfg.Chat)
	if err != nil {
		log.Fatalf("❌ Chat client error: %v", err)
	}
	converter, err := convert.New(cfg.Convert)
	if err != nil {
		log.Fatalf("❌ Converter error: %v", err)
	}

	sess := session.New(client, converter, nil)
	sess.SetJobContext(models.JobContext{Title: *title, Requirements: *requirements, ExperienceLevel: *level})

	ctx := context.Background()

	if *resumePath != "" {
		f, err := os.Open(*resumePath)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", *resumePath, err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			log.Fatalf("Failed to stat %s: %v", *resumePath, err)
		}

		fmt.Printf("Uploading %s...\n", *resumePath)
		res, err := sess.Uploads.Upload(ctx, upload.File{
			Name: filepath.Base(*resumePath),
			Size: info.Size(),
			Body: f,
		})
		if err != nil {
			log.Fatalf("Upload failed (%s): %s", apperr.KindOf(err), apperr.UserMessage(err))
		}
		fmt.Printf("Extracted %d characters from %s\n", res.Chars, res.FileName)
	}

	fmt.Println("Sending question to the coach...")
	reply, err := sess.Chat.Send(ctx, *question)
	if err != nil {
		log.Fatalf("Chat failed (%s): %v", apperr.KindOf(err), err)
	}
	if reply == nil {
		log.Fatal("Question is empty, pass one with -q")
	}

	fmt.Println("\nSuccess! Coach reply:")
	fmt.Println(reply.Content)
}
