package slackbot

import (
	"log"

	"github.com/nguyentantai21042004/minutes-bot/internal/logger"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

// acker sends the Socket Mode acknowledgement for one envelope
type acker interface {
	Ack(req socketmode.Request, payload ...interface{})
}

type implListener struct {
	client *socketmode.Client
	acker  acker
	sink   Sink
	logger logger.Logger
}

// NewAPI creates the Web API client used by both the listener and the
// messenger.
func NewAPI(botToken, appToken string, debug bool, l logger.Logger) *slack.Client {
	return slack.New(botToken,
		slack.OptionAppLevelToken(appToken),
		slack.OptionDebug(debug),
		slack.OptionLog(log.New(l.Writer(), "slack-api: ", log.Lshortfile)),
	)
}

// New creates a Socket Mode Listener that hands file shares to sink
func New(api *slack.Client, sink Sink, debug bool, l logger.Logger) Listener {
	client := socketmode.New(api,
		socketmode.OptionDebug(debug),
		socketmode.OptionLog(log.New(l.Writer(), "socketmode: ", log.Lshortfile)),
	)

	return &implListener{
		client: client,
		acker:  client,
		sink:   sink,
		logger: l,
	}
}
