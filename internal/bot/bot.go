package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"
	"time"
	"unicode"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-tracker/internal/analytics"
	"task-tracker/internal/config"
	"task-tracker/internal/model"
	"task-tracker/internal/repository"
	"task-tracker/internal/service"
)

const (
	cbRangePrefix = "range:"
	cbDonePrefix  = "done:"
)

const (
	menuLabelTasks     = "📋 Tasks"
	menuLabelBoard     = "🗂 Board"
	menuLabelAnalytics = "📊 Analytics"
	menuLabelHelp      = "ℹ️ Help"
)

var rangeOptions = []struct {
	selector string
	label    string
}{
	{analytics.RangeWeek, "7 days"},
	{analytics.RangeMonth, "30 days"},
	{analytics.RangeQuarter, "90 days"},
}

// Bot aggregates Telegram API with services.
type Bot struct {
	api          *tgbotapi.BotAPI
	userRepo     *repository.UserRepository
	taskSvc      *service.TaskService
	boardSvc     *service.BoardService
	analyticsSvc *service.AnalyticsService
	summarySvc   *service.SummaryService
	config       config.Config
}

func New(cfg config.Config, userRepo *repository.UserRepository, taskSvc *service.TaskService, boardSvc *service.BoardService, analyticsSvc *service.AnalyticsService, summarySvc *service.SummaryService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:          api,
		userRepo:     userRepo,
		taskSvc:      taskSvc,
		boardSvc:     boardSvc,
		analyticsSvc: analyticsSvc,
		summarySvc:   summarySvc,
		config:       cfg,
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if handled, err := b.handleMenuAlias(ctx, msg); handled {
		return err
	}

	return b.sendText(msg.Chat.ID, "I did not understand that. Try /analytics or /help.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "help":
		return b.handleHelp(msg)
	case "tasks":
		return b.handleListTasks(ctx, msg)
	case "board":
		return b.handleBoard(ctx, msg)
	case "analytics":
		return b.handleAnalytics(ctx, msg)
	case "status":
		return b.handleStatus(ctx, msg)
	case "done":
		return b.handleDone(ctx, msg)
	case "report":
		return b.handleReport(ctx, msg)
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. Use /help.")
	}
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	switch strings.TrimSpace(msg.Text) {
	case menuLabelTasks:
		return true, b.handleListTasks(ctx, msg)
	case menuLabelBoard:
		return true, b.handleBoard(ctx, msg)
	case menuLabelAnalytics:
		return true, b.handleAnalytics(ctx, msg)
	case menuLabelHelp:
		return true, b.handleHelp(msg)
	default:
		return false, nil
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	text := fmt.Sprintf("👋 Hi, %s! You are registered as user <b>#%d</b>.\n"+
		"Use that id in the <code>X-User-ID</code> header of the web API.\n\n%s",
		escape(displayName(msg.From)), user.ID, helpText)
	return b.sendText(msg.Chat.ID, text)
}

const helpText = "<b>Commands</b>\n" +
	"/tasks · your assigned tasks\n" +
	"/board · tasks grouped by status\n" +
	"/analytics [7|30|90] · charts summary for a period\n" +
	"/status &lt;id&gt; &lt;status&gt; · change a task status\n" +
	"/done &lt;id&gt; · mark a task done\n" +
	"/report · weekly digest right now"

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	return b.sendText(msg.Chat.ID, helpText)
}

func (b *Bot) handleListTasks(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	return b.sendTaskList(ctx, msg.Chat.ID, user)
}

func (b *Bot) sendTaskList(ctx context.Context, chatID int64, user *model.User) error {
	tasks, err := b.taskSvc.ListAssigned(ctx, user.ID)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not load tasks: %s", escape(err.Error())))
	}
	if len(tasks) == 0 {
		return b.sendText(chatID, "No tasks are assigned to you.")
	}

	now := time.Now().UTC()
	var builder strings.Builder
	builder.WriteString("📋 <b>Your tasks</b>\n\n")

	var buttons [][]tgbotapi.InlineKeyboardButton
	for _, task := range tasks {
		builder.WriteString(formatTask(task, now))
		if analytics.NormalizeBoard(task.Status) == analytics.StatusDone {
			continue
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("✅ #%d · %s", task.ID, shortTitle(task.Title, 24)), fmt.Sprintf("%s%d", cbDonePrefix, task.ID)),
		))
	}

	if len(buttons) == 0 {
		return b.sendText(chatID, strings.TrimSpace(builder.String()))
	}
	return b.sendWithReplyMarkup(chatID, strings.TrimSpace(builder.String()), tgbotapi.NewInlineKeyboardMarkup(buttons...))
}

func (b *Bot) handleBoard(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	board, err := b.boardSvc.Board(ctx, user.ID)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not load the board: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, formatBoard(board))
}

func (b *Bot) handleAnalytics(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	selector := parseRangeArg(msg.CommandArguments(), b.config.DefaultRange)
	text, err := b.analyticsText(ctx, user, selector)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not build analytics: %s", escape(err.Error())))
	}
	return b.sendWithReplyMarkup(msg.Chat.ID, text, rangeKeyboard(selector))
}

func (b *Bot) analyticsText(ctx context.Context, user *model.User, selector string) (string, error) {
	report, err := b.analyticsSvc.Report(ctx, user.ID, service.RangeRequest{Selector: selector})
	if err != nil {
		return "", err
	}
	return service.Render(report, user.Name, service.FormatHTML, time.Now().UTC()), nil
}

func (b *Bot) handleStatus(ctx context.Context, msg *tgbotapi.Message) error {
	taskID, status, err := parseStatusArgs(msg.CommandArguments())
	if err != nil {
		return b.sendText(msg.Chat.ID, "Usage: /status 12 in progress")
	}
	return b.changeStatus(ctx, msg.Chat.ID, msg.From, taskID, status)
}

func (b *Bot) handleDone(ctx context.Context, msg *tgbotapi.Message) error {
	taskID, err := parseTaskID(strings.TrimSpace(msg.CommandArguments()), "")
	if err != nil {
		return b.sendText(msg.Chat.ID, "Task id must be a number: /done 12")
	}
	return b.changeStatus(ctx, msg.Chat.ID, msg.From, taskID, string(analytics.StatusDone))
}

func (b *Bot) changeStatus(ctx context.Context, chatID int64, from *tgbotapi.User, taskID uint, status string) error {
	if _, err := b.ensureUser(ctx, from); err != nil {
		return err
	}
	if err := b.taskSvc.ChangeStatus(ctx, taskID, status); err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			return b.sendText(chatID, "Task not found.")
		case errors.Is(err, service.ErrStatusRequired):
			return b.sendText(chatID, "Status must not be empty.")
		default:
			return b.sendText(chatID, fmt.Sprintf("Could not update the task: %s", escape(err.Error())))
		}
	}
	return b.sendText(chatID, fmt.Sprintf("%s Task #%d is now <b>%s</b>.", statusIcon(analytics.NormalizeBoard(status)), taskID, escape(strings.TrimSpace(status))))
}

func (b *Bot) handleReport(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	text, err := b.summarySvc.Digest(ctx, *user, time.Now().UTC())
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not build the report: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("callback ack: %v", err)
	}

	data := cb.Data
	switch {
	case strings.HasPrefix(data, cbRangePrefix):
		log.Printf("[info] callback range user=%d range=%s", cb.From.ID, strings.TrimPrefix(data, cbRangePrefix))
		user, err := b.ensureUser(ctx, cb.From)
		if err != nil {
			return err
		}
		selector := parseRangeArg(strings.TrimPrefix(data, cbRangePrefix), b.config.DefaultRange)
		text, err := b.analyticsText(ctx, user, selector)
		if err != nil {
			return b.sendText(cb.Message.Chat.ID, fmt.Sprintf("Could not build analytics: %s", escape(err.Error())))
		}
		edit := tgbotapi.NewEditMessageTextAndMarkup(cb.Message.Chat.ID, cb.Message.MessageID, text, rangeKeyboard(selector))
		edit.ParseMode = tgbotapi.ModeHTML
		_, err = b.api.Send(edit)
		return err
	case strings.HasPrefix(data, cbDonePrefix):
		log.Printf("[info] callback done user=%d task=%s", cb.From.ID, strings.TrimPrefix(data, cbDonePrefix))
		taskID, err := parseTaskID(data, cbDonePrefix)
		if err != nil {
			return nil
		}
		return b.changeStatus(ctx, cb.Message.Chat.ID, cb.From, taskID, string(analytics.StatusDone))
	}
	return nil
}

// SendDigests sends the weekly analytics digest to every user linked to
// Telegram. It stops early when ctx is cancelled.
func (b *Bot) SendDigests(ctx context.Context) error {
	users, err := b.userRepo.ListWithTelegram(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		text, err := b.summarySvc.Digest(ctx, user, now)
		if err != nil {
			log.Printf("build digest for user %d: %v", user.ID, err)
			continue
		}
		if err := b.sendText(*user.TelegramID, text); err != nil {
			log.Printf("send digest to %d: %v", *user.TelegramID, err)
		}
	}
	log.Printf("[info] digests sent to %d users", len(users))
	return nil
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	return b.userRepo.UpsertFromTelegram(ctx, from.ID, displayName(from), from.UserName)
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelTasks),
			tgbotapi.NewKeyboardButton(menuLabelBoard),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelAnalytics),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

// rangeKeyboard marks the active period with a bullet.
func rangeKeyboard(active string) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, opt := range rangeOptions {
		label := opt.label
		if opt.selector == active {
			label = "• " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, cbRangePrefix+opt.selector))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// parseRangeArg accepts the preset day counts; anything else falls back.
func parseRangeArg(arg, fallback string) string {
	arg = strings.TrimSpace(arg)
	for _, opt := range rangeOptions {
		if arg == opt.selector {
			return arg
		}
	}
	return fallback
}

// parseStatusArgs splits "<id> <status words>".
func parseStatusArgs(args string) (uint, string, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return 0, "", fmt.Errorf("expected id and status")
	}
	taskID, err := parseTaskID(fields[0], "")
	if err != nil {
		return 0, "", err
	}
	return taskID, strings.Join(fields[1:], " "), nil
}

func parseTaskID(data, prefix string) (uint, error) {
	raw := strings.TrimPrefix(data, prefix)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

func formatBoard(board service.Board) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🗂 <b>Board</b> · %d tasks\n", board.TotalTasks))
	for _, col := range board.Columns {
		sb.WriteString(fmt.Sprintf("\n%s <b>%s</b> (%d)\n", statusIcon(col.Status), escape(string(col.Status)), col.Count))
		for _, task := range col.Tasks {
			sb.WriteString(fmt.Sprintf("   #%d %s\n", task.ID, escape(shortTitle(task.Title, 40))))
		}
	}
	return strings.TrimSpace(sb.String())
}

func formatTask(task model.Task, now time.Time) string {
	var b strings.Builder
	status := analytics.NormalizeBoard(task.Status)
	b.WriteString(fmt.Sprintf("%s <b>#%d</b> %s · %s\n", statusIcon(status), task.ID, escape(normalizeTitle(task.Title)), escape(string(status))))
	if task.DueDate != nil && status != analytics.StatusDone {
		d := task.DueDate.UTC()
		if now.After(d) {
			b.WriteString(fmt.Sprintf("   ⏰ Due %s · <b>overdue</b>\n", d.Format("2006-01-02")))
		} else {
			b.WriteString(fmt.Sprintf("   ⏰ Due %s\n", d.Format("2006-01-02")))
		}
	}
	return b.String()
}

func statusIcon(status analytics.Status) string {
	switch status {
	case analytics.StatusDone:
		return "✅"
	case analytics.StatusInProgress:
		return "🔄"
	case analytics.StatusBlocked:
		return "⛔"
	default:
		return "🟡"
	}
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	clean = normalizeTitle(clean)
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func normalizeTitle(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	runes := []rune(value)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func displayName(from *tgbotapi.User) string {
	return strings.TrimSpace(from.FirstName + " " + from.LastName)
}

func escape(s string) string {
	return html.EscapeString(s)
}
