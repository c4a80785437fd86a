// Telegram delivery for newly inserted postings and run status lines.

package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/DaDevFox/job-track/internal/scraper"
)

type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func New(token string, chatID int64) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Notifier{
		api:    api,
		chatID: chatID,
	}, nil
}

func (n *Notifier) send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := n.api.Send(msg)
	return err
}

func (n *Notifier) SendJob(job scraper.Job) error {
	loc := job.Location
	if loc == "" {
		loc = "N/A"
	}

	text := fmt.Sprintf("🔥 <b>%s</b>\n🏢 %s\n📍 %s\n", job.Title, job.Company, loc)
	if job.NewGrad {
		text += "🎓 New grad friendly\n"
	}
	if len(job.Tags) > 0 {
		text += fmt.Sprintf("🏷 %s\n", strings.Join(job.Tags, ", "))
	}
	text += fmt.Sprintf("🔗 <a href=\"%s\">Apply Now</a>", job.ApplyURL)
	return n.send(text)
}

func (n *Notifier) SendStatus(message string) error {
	return n.send("ℹ️ " + message)
}

func (n *Notifier) SendError(runErr error) error {
	return n.send(fmt.Sprintf("⚠️ <b>Scrape error</b>:\n%v", runErr))
}
