package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/retail-sim-bot/internal/domain/metrics"
	"github.com/yourusername/retail-sim-bot/internal/usecase"
	"go.uber.org/zap"
)

const (
	maxUploadSize  = 5 * 1024 * 1024
	selectCallback = "select:"
)

// BotHandler Telegram bot handler
type BotHandler struct {
	bot       *tgbotapi.BotAPI
	locations usecase.LocationUseCase
	metrics   usecase.MetricsUseCase
	advisor   usecase.AdvisorUseCase
}

// NewBotHandler creates the bot handler
func NewBotHandler(
	token string,
	locations usecase.LocationUseCase,
	metrics usecase.MetricsUseCase,
	advisor usecase.AdvisorUseCase,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &BotHandler{
		bot:       bot,
		locations: locations,
		metrics:   metrics,
		advisor:   advisor,
	}, nil
}

// Start polls updates until ctx is cancelled
func (h *BotHandler) Start(ctx context.Context) error {
	zap.S().Infof("bot @%s started", h.bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			zap.S().Info("bot stopping")
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if update.CallbackQuery != nil {
				go h.handleCallback(ctx, update.CallbackQuery)
				continue
			}

			if update.Message == nil {
				continue
			}

			go h.handleMessage(ctx, update.Message)
		}
	}
}

func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}

	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	if message.Text != "" {
		h.sendMessage(message.Chat.ID, "Send a command to run a calculation. /help lists them.")
	}
}

func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID
	args := message.CommandArguments()

	switch message.Command() {
	case "start":
		h.sendMessage(chatID, h.getWelcomeMessage())
	case "help":
		h.sendMessage(chatID, h.getHelpMessage())
	case "locations":
		h.handleListCommand(ctx, userID, chatID, args, func(names []string) error {
			_, err := h.locations.SetLocations(ctx, userID, names)
			return err
		})
	case "products":
		h.handleListCommand(ctx, userID, chatID, args, func(names []string) error {
			_, err := h.locations.SetProducts(ctx, userID, names)
			return err
		})
	case "customers":
		h.handleListCommand(ctx, userID, chatID, args, func(names []string) error {
			_, err := h.locations.SetCustomers(ctx, userID, names)
			return err
		})
	case "select":
		h.handleSelectCommand(ctx, userID, chatID, args)
	case "info":
		h.handleInfoCommand(ctx, userID, chatID, args)
	case "session":
		h.handleSessionCommand(ctx, userID, chatID, args)
	case "capacity":
		h.handleCapacityCommand(ctx, userID, chatID, args)
	case "breakeven":
		h.handleBreakEvenCommand(ctx, userID, chatID, args)
	case "isp":
		h.handleSellingPriceCommand(ctx, userID, chatID, args)
	case "compare":
		h.handleCompareCommand(ctx, userID, chatID, args)
	case "roi":
		h.handleROICommand(ctx, userID, chatID, args)
	case "velocity":
		h.handleVelocityCommand(ctx, userID, chatID, args)
	case "history":
		h.handleHistoryCommand(ctx, userID, chatID)
	case "clear":
		h.handleClearCommand(ctx, userID, chatID)
	case "reset":
		h.handleResetCommand(ctx, userID, chatID)
	case "advice":
		h.handleAdviceCommand(ctx, userID, chatID)
	default:
		h.sendMessage(chatID, "Unknown command. /help lists the available ones.")
	}
}

// handleListCommand shows the workspace when args are empty, otherwise replaces one list
func (h *BotHandler) handleListCommand(ctx context.Context, userID, chatID int64, args string, set func([]string) error) {
	if strings.TrimSpace(args) != "" {
		if err := set(splitNames(args)); err != nil {
			h.sendError(chatID, err)
			return
		}
	}

	ws, err := h.locations.Workspace(ctx, userID)
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, renderWorkspace(ws))
}

func (h *BotHandler) handleSelectCommand(ctx context.Context, userID, chatID int64, args string) {
	if name := strings.TrimSpace(args); name != "" {
		h.selectLocation(ctx, userID, chatID, name)
		return
	}

	ws, err := h.locations.Workspace(ctx, userID)
	if err != nil {
		h.sendError(chatID, err)
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(ws.Locations))
	for _, name := range ws.Locations {
		label := name
		if name == ws.Selected {
			label = "• " + name
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, selectCallback+name),
		))
	}

	msg := tgbotapi.NewMessage(chatID, "📍 Choose a location:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := h.bot.Send(msg); err != nil {
		zap.S().Errorf("failed to send location keyboard: %v", err)
	}
}

func (h *BotHandler) selectLocation(ctx context.Context, userID, chatID int64, name string) {
	loc, err := h.locations.SelectLocation(ctx, userID, name)
	if err != nil {
		h.sendError(chatID, err)
		return
	}

	text := fmt.Sprintf("📍 %s selected.", loc.Name)
	if !loc.Applied {
		text += "\nIts retail information is not applied yet, send /info to fill it in."
	}
	h.sendMessage(chatID, text)
}

func (h *BotHandler) handleInfoCommand(ctx context.Context, userID, chatID int64, args string) {
	loc, ws, err := h.locations.Selected(ctx, userID)
	if err != nil {
		h.sendError(chatID, err)
		return
	}

	if strings.TrimSpace(args) == "" {
		h.sendMessage(chatID, renderInfoForm(loc, ws))
		return
	}

	form, err := parseInfoForm(args, usecase.FormFromLocation(*loc, *ws), ws.Products, ws.Customers)
	if err != nil {
		h.sendError(chatID, err)
		return
	}

	applied, err := h.locations.ApplyInformation(ctx, userID, form)
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("%s Information applied for %s.", iconOK, applied.Name))
}

// handleSessionCommand overview of every location plus the stored record of one
func (h *BotHandler) handleSessionCommand(ctx context.Context, userID, chatID int64, args string) {
	locations, err := h.locations.Overview(ctx, userID)
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, renderOverview(locations))

	snapshot, err := h.locations.Snapshot(ctx, userID, args)
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, snapshot)
}

func (h *BotHandler) handleCapacityCommand(ctx context.Context, userID, chatID int64, args string) {
	plan, err := h.readPlan(ctx, userID, args)
	if err != nil {
		h.sendError(chatID, err)
		return
	}

	report, err := h.metrics.Capacity(ctx, userID, plan.Quantities)
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, renderCapacity(report))
}

func (h *BotHandler) handleBreakEvenCommand(ctx context.Context, userID, chatID int64, args string) {
	plan, err := h.readPlan(ctx, userID, args)
	if err != nil {
		h.sendError(chatID, err)
		return
	}

	report, err := h.metrics.BreakEven(ctx, userID, plan)
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, renderBreakEven(report))
}

func (h *BotHandler) handleSellingPriceCommand(ctx context.Context, userID, chatID int64, args string) {
	plan, err := h.readPlan(ctx, userID, args)
	if err != nil {
		h.sendError(chatID, err)
		return
	}

	report, err := h.metrics.InitialSellingPrice(ctx, userID, plan)
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, renderSellingPrice(report))
}

// readPlan parses a plan against the user's current product list
func (h *BotHandler) readPlan(ctx context.Context, userID int64, args string) (usecase.PlanInput, error) {
	ws, err := h.locations.Workspace(ctx, userID)
	if err != nil {
		return usecase.PlanInput{}, err
	}
	return parsePlan(args, ws.Products)
}

func (h *BotHandler) handleCompareCommand(ctx context.Context, userID, chatID int64, args string) {
	variable, before, after, err := parseCompare(args)
	if err != nil {
		h.sendError(chatID, fmt.Errorf("%w\nVariables: %s", err, strings.Join(usecase.BeforeAfterVariables, ", ")))
		return
	}

	report, err := h.metrics.BeforeAfter(ctx, userID, variable, before, after)
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, renderChange(report))
}

func (h *BotHandler) handleROICommand(ctx context.Context, userID, chatID int64, args string) {
	revenue, investment, err := parsePair(args, "usage: /roi <additional revenue> <marketing investment>")
	if err != nil {
		h.sendError(chatID, err)
		return
	}

	r, err := h.metrics.ROI(ctx, userID, revenue, investment)
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, renderROI(r))
}

func (h *BotHandler) handleVelocityCommand(ctx context.Context, userID, chatID int64, args string) {
	units, days, daily, err := parseVelocity(args)
	if err != nil {
		h.sendError(chatID, err)
		return
	}

	var v *metrics.Velocity
	if daily != nil {
		v, err = h.metrics.VelocitySeries(ctx, userID, daily)
	} else {
		v, err = h.metrics.Velocity(ctx, userID, units, days)
	}
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, renderVelocity(v))
}

func (h *BotHandler) handleHistoryCommand(ctx context.Context, userID, chatID int64) {
	calcs, err := h.metrics.History(ctx, userID, 15)
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, renderHistory(calcs))
}

func (h *BotHandler) handleClearCommand(ctx context.Context, userID, chatID int64) {
	if err := h.metrics.ClearHistory(ctx, userID); err != nil {
		zap.S().Errorf("clear history error: %v", err)
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, "🗑 Calculation history cleared.")
}

// handleResetCommand drops locations, lists and history
func (h *BotHandler) handleResetCommand(ctx context.Context, userID, chatID int64) {
	if err := h.locations.Reset(ctx, userID); err != nil {
		zap.S().Errorf("reset error: %v", err)
		h.sendError(chatID, err)
		return
	}
	if err := h.metrics.ClearHistory(ctx, userID); err != nil {
		zap.S().Errorf("clear history error: %v", err)
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, "🔄 Session reset. Locations, products and customers are back to the defaults.")
}

func (h *BotHandler) handleAdviceCommand(ctx context.Context, userID, chatID int64) {
	h.sendMessage(chatID, "⏳ Reviewing your numbers...")

	advice, err := h.advisor.Advise(ctx, userID)
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, "💡 "+advice)
}

func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	doc := message.Document
	chatID := message.Chat.ID

	if doc.FileSize > maxUploadSize {
		h.sendMessage(chatID, iconBad+" The file must not exceed 5MB!")
		return
	}

	switch strings.ToLower(filepath.Ext(doc.FileName)) {
	case ".xlsx", ".xlsm", ".csv":
	default:
		h.sendMessage(chatID, iconBad+" Only catalog files (.xlsx, .csv) are accepted!")
		return
	}

	h.sendMessage(chatID, "⏳ Reading the catalog...")

	fileBytes, err := h.downloadFile(doc.FileID)
	if err != nil {
		zap.S().Errorf("file download error: %v", err)
		h.sendMessage(chatID, iconBad+" Failed to download the file.")
		return
	}

	result, err := h.locations.ImportCatalog(ctx, message.From.ID, fileBytes, doc.FileName)
	if err != nil {
		zap.S().Warnf("catalog import error: %v", err)
		h.sendError(chatID, err)
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("%s Imported %d products from %s into %s (%d new).\n\n/session shows the stored information.",
		iconOK, result.Products, doc.FileName, result.Location, result.Added))
}

func (h *BotHandler) downloadFile(fileID string) ([]byte, error) {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	resp, err := http.Get(file.Link(h.bot.Token))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxUploadSize+1))
}

func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}

	callback := tgbotapi.NewCallback(cq.ID, "")
	if _, err := h.bot.Request(callback); err != nil {
		zap.S().Warnf("callback answer failed: %v", err)
	}

	if name, ok := strings.CutPrefix(cq.Data, selectCallback); ok {
		h.selectLocation(ctx, cq.From.ID, cq.Message.Chat.ID, name)
	}
}

func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		zap.S().Errorf("failed to send message: %v", err)
	}
}

// sendError undefined and missing-input conditions are warnings, the rest are failures
func (h *BotHandler) sendError(chatID int64, err error) {
	h.sendMessage(chatID, userMessage(err))
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrLocationNotApplied):
		return fmt.Sprintf("%s %v. Send /info to fill in the selected location.", iconWarning, err)
	case errors.Is(err, usecase.ErrAdvisorDisabled):
		return fmt.Sprintf("%s The advisor is not configured on this bot.", iconWarning)
	case errors.Is(err, usecase.ErrInvalidQuantity):
		return fmt.Sprintf("%s %v\nAllowed quantities: %s", iconBad, err, quantityOptionsText())
	default:
		return fmt.Sprintf("%s %v", iconBad, err)
	}
}

func (h *BotHandler) getWelcomeMessage() string {
	return `Hello! 👋

I simulate a small retail business across several locations.

1. /locations, /products and /customers edit your lists
2. /select picks a location, /info fills in its retail information
3. Then run the calculations: capacity, break-even price, initial selling price, before/after comparison, ROI and sales velocity

/help shows every command. You can also send a catalog file (.xlsx or .csv).`
}

func (h *BotHandler) getHelpMessage() string {
	return fmt.Sprintf(`🤖 Commands:

Session:
/locations Jakarta, Singapore - set the location list
/products Apple, Orange - set the product list
/customers Elder, Adult - set the customer segments
/select [name] - choose the active location
/info - show the retail information form
/info area=80 rent=120 cost.Apple=1.5 sell.Apple=2.5 dim.Apple=0.01 exp.Apple=7 seg.Adult=40 - apply it
/session [name] - all locations and the stored information of one

Price strategy:
/capacity Apple=3000 Orange=5000
/breakeven marketing=50 Apple=3000
/isp marketing=50 Apple=3000 sell.Apple=2.8

Evaluation:
/compare Revenue|1000|1250
/roi 1500 1000 - additional revenue, marketing investment
/velocity 300 14 or /velocity 20,25,18

/history - recent calculations
/clear - clear the calculation history
/reset - start over with the default lists
/advice - AI commentary on the selected location

Quantities: %s (unlisted products use 1000).
Catalog files: columns Product, Cost, Sell, Dimension, Expired; .xlsx or .csv up to 5MB.`, quantityOptionsText())
}
