package transcoder

import (
	"github.com/nguyentantai21042004/minutes-bot/internal/logger"
	"github.com/nguyentantai21042004/minutes-bot/pkg/executor"
)

type implTranscoder struct {
	binary   string
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Transcoder running the ffmpeg binary at binaryPath
func New(binaryPath string, exec executor.Executor, log logger.Logger) Transcoder {
	return &implTranscoder{
		binary:   binaryPath,
		executor: exec,
		logger:   log,
	}
}
