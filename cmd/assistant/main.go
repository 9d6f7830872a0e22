package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"inmobot/internal/client"
	"inmobot/internal/config"
	"inmobot/internal/conversation"
	"inmobot/internal/extractor"
	"inmobot/internal/logger"
	"inmobot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr and stay quiet unless LOG_LEVEL asks for more
	level := cfg.Logging.Level
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	log := logger.New(level, "console")
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(cfg.Client.APIBaseURL, 0)
	session := conversation.NewSession(api, conversation.Options{
		UserID:    "user_" + uuid.NewString(),
		Limit:     cfg.Client.Limit,
		Extractor: newExtractor(cfg, log),
		Logger:    log,
	})

	if _, err := api.Health(ctx); err != nil {
		log.Warn("API not reachable", zap.String("base_url", cfg.Client.APIBaseURL), zap.Error(err))
	}

	fmt.Printf("%s\n\n", session.Greeting())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "/salir" || text == "/exit" {
			break
		}
		if text == "/guardar" {
			saveLast(ctx, api, session, log)
			continue
		}

		turn, err := session.Send(ctx, text)
		if turn != nil {
			fmt.Printf("\n%s\n", turn.Reply)
			if turn.Suggestion != nil {
				fmt.Printf("\n%s\n", conversation.RenderCard(*turn.Suggestion))
				if turn.Degraded {
					fmt.Println("  (resultado de ejemplo, la búsqueda en vivo no está disponible)")
				}
			}
		}
		if err != nil {
			log.Debug("turn failed", zap.Error(err))
			fmt.Printf("\n%s\n", conversation.Apology(err))
		}
		fmt.Println()

		if ctx.Err() != nil {
			break
		}
	}
}

// saveLast adds the last card shown to the user's wishlist
func saveLast(ctx context.Context, api *client.Client, session *conversation.Session, log *zap.Logger) {
	pick, ok := session.LastSuggestion()
	if !ok {
		fmt.Printf("\nTodavía no te mostré ninguna propiedad para guardar.\n\n")
		return
	}
	if err := api.AddToWishlist(ctx, session.UserID(), pick.URL); err != nil {
		log.Debug("wishlist add failed", zap.Error(err))
		fmt.Printf("\nNo pude guardar la propiedad, probá de nuevo en un rato.\n\n")
		return
	}
	fmt.Printf("\nGuardé \"%s\" en tu lista.\n\n", pick.Title)
}

// newExtractor picks the criteria extractor named by EXTRACTOR
func newExtractor(cfg *config.Config, log *zap.Logger) extractor.Extractor {
	var completer extractor.Completer
	if cfg.OpenAI.Enabled {
		completer = service.NewOpenAIClient(&cfg.OpenAI)
	}
	return extractor.New(cfg.Extractor.Mode, completer, log)
}
