package dispatcher

import (
	"sync"
	"sync/atomic"

	"github.com/nguyentantai21042004/minutes-bot/internal/dedupe"
	"github.com/nguyentantai21042004/minutes-bot/internal/logger"
	"github.com/nguyentantai21042004/minutes-bot/internal/models"
)

type implDispatcher struct {
	handler       Handler
	store         dedupe.Store
	logger        logger.Logger
	maxConcurrent int
	queue         chan models.ShareEvent
	sem           *semaphore
	wg            sync.WaitGroup

	running    atomic.Int64
	processed  atomic.Int64
	failed     atomic.Int64
	dropped    atomic.Int64
	duplicates atomic.Int64
}

// New creates a Dispatcher. store may be nil to disable duplicate
// suppression.
func New(handler Handler, store dedupe.Store, log logger.Logger, maxConcurrent, queueSize int) Dispatcher {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if queueSize <= 0 {
		queueSize = 16
	}

	return &implDispatcher{
		handler:       handler,
		store:         store,
		logger:        log,
		maxConcurrent: maxConcurrent,
		queue:         make(chan models.ShareEvent, queueSize),
		sem:           newSemaphore(maxConcurrent),
	}
}
