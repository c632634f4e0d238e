package retriever

import (
	"github.com/nguyentantai21042004/minutes-bot/internal/logger"
)

type implRetriever struct {
	downloader Downloader
	logger     logger.Logger
}

// New creates a Retriever that downloads through d
func New(d Downloader, log logger.Logger) Retriever {
	return &implRetriever{
		downloader: d,
		logger:     log,
	}
}
