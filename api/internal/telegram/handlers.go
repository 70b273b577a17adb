// Package telegram is the chat front-end: players guess by typing free text.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tuneguess/api/internal/game"
)

type Bot struct {
	API  *tgbotapi.BotAPI
	Game *game.Service
}

func New(api *tgbotapi.BotAPI, g *game.Service) *Bot {
	return &Bot{API: api, Game: g}
}

// Run consumes updates until the channel closes.
func (b *Bot) Run(updates tgbotapi.UpdatesChannel) {
	for upd := range updates {
		b.handleUpdate(upd)
	}
}

func (b *Bot) handleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil || upd.Message.From == nil {
		return
	}
	cid := upd.Message.Chat.ID
	uid := fmt.Sprintf("tg:%d", upd.Message.From.ID)

	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	if upd.Message.IsCommand() {
		switch upd.Message.Command() {
		case "start":
			b.send(cid, "Guess today's song! Listen with /song, then just type your guess: title, artist, or both.")
		case "song":
			b.sendDaily(ctx, cid)
		case "health":
			b.send(cid, "ok")
		default:
			b.send(cid, "Unknown command. Try /song or just type a guess.")
		}
		return
	}

	text := strings.TrimSpace(upd.Message.Text)
	if text == "" {
		return
	}

	res, err := b.Game.MakeGuess(ctx, uid, text)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrNoGuessesLeft):
			b.send(cid, "You're out of guesses for today, come back tomorrow!")
		default:
			log.Printf("guess for %s failed: %v", uid, err)
			b.send(cid, "Could not score that guess right now, try again in a moment.")
		}
		return
	}

	if res.IsCorrect {
		b.send(cid, fmt.Sprintf("🎉 That's it! Score %d/1000.", res.Score))
		return
	}
	b.send(cid, fmt.Sprintf("Score %d/1000. %d guesses left today.", res.Score, res.GuessesLeft))
}

func (b *Bot) sendDaily(ctx context.Context, cid int64) {
	daily, err := b.Game.Daily(ctx)
	if err != nil {
		log.Printf("daily song: %v", err)
		b.send(cid, "No song available right now.")
		return
	}
	var sb strings.Builder
	if daily.Today != nil {
		fmt.Fprintf(&sb, "Today's clip: %s\n", daily.Today.ClipURL)
	} else {
		sb.WriteString("No song today.\n")
	}
	if daily.Yesterday != nil {
		fmt.Fprintf(&sb, "Yesterday was %q by %s.", daily.Yesterday.Title, daily.Yesterday.Artist)
	}
	b.send(cid, strings.TrimSpace(sb.String()))
}

func (b *Bot) send(chatID int64, text string) {
	_, _ = b.API.Send(tgbotapi.NewMessage(chatID, text))
}
