package telegram

import (
	"StackBot/internal/domain/repository"
	"StackBot/internal/domain/service/capture"
	"StackBot/internal/domain/service/qa"
	"context"
	"sync"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type Runner struct {
	bot *tgbot.Bot
	log *zap.Logger
}

// Deps carries everything the controller needs; no ambient globals.
type Deps struct {
	QA         *qa.Service
	Engine     *capture.Engine
	Deduper    repository.InteractionDeduper
	Store      repository.Pinger
	Logger     *zap.Logger
	Capture    capture.Config
	VoteWindow time.Duration
}

type pairKey struct {
	userID int64
	chatID int64
}

type confirmRef struct {
	chatID    int64
	messageID int
	kind      string
}

type Controller struct {
	bot        *tgbot.Bot
	qa         *qa.Service
	engine     *capture.Engine
	script     *capture.Script
	dedupe     repository.InteractionDeduper
	store      repository.Pinger
	log        *zap.Logger
	charLimit  int
	voteWindow time.Duration

	confirmMu sync.Mutex
	confirms  map[pairKey]confirmRef
}

func New(token string, deps Deps) (*Runner, error) {
	ctrl := &Controller{
		qa:         deps.QA,
		engine:     deps.Engine,
		dedupe:     deps.Deduper,
		store:      deps.Store,
		log:        deps.Logger,
		charLimit:  deps.Capture.CharLimit,
		voteWindow: deps.VoteWindow,
		confirms:   make(map[pairKey]confirmRef),
	}
	ctrl.script = capture.NewScript(deps.Engine, ctrl, deps.Capture)

	b, err := tgbot.New(token, tgbot.WithDefaultHandler(ctrl.defaultHandler))
	if err != nil {
		return nil, err
	}
	ctrl.bot = b

	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, ctrl.start)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/help", tgbot.MatchTypeExact, ctrl.help)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/ask", tgbot.MatchTypeExact, ctrl.ask)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/answer", tgbot.MatchTypePrefix, ctrl.answer)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/question", tgbot.MatchTypePrefix, ctrl.question)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/ping", tgbot.MatchTypeExact, ctrl.ping)

	return &Runner{bot: b, log: deps.Logger}, nil
}

func (r *Runner) Start(ctx context.Context) {
	r.log.Info("telegram bot started")
	r.bot.Start(ctx)
}

func (c *Controller) defaultHandler(ctx context.Context, b *tgbot.Bot, upd *models.Update) {
	switch {
	case upd.CallbackQuery != nil:
		c.handleCallback(ctx, upd)
	case upd.Message != nil && upd.Message.Text != "":
		c.handleText(ctx, upd)
	}
}

func (c *Controller) trackConfirm(userID, chatID int64, messageID int, kind string) {
	c.confirmMu.Lock()
	c.confirms[pairKey{userID: userID, chatID: chatID}] = confirmRef{chatID: chatID, messageID: messageID, kind: kind}
	c.confirmMu.Unlock()
}

func (c *Controller) takeConfirm(userID, chatID int64) (confirmRef, bool) {
	c.confirmMu.Lock()
	defer c.confirmMu.Unlock()
	key := pairKey{userID: userID, chatID: chatID}
	ref, ok := c.confirms[key]
	if ok {
		delete(c.confirms, key)
	}
	return ref, ok
}
