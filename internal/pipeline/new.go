package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/minutes-bot/internal/logger"
	"github.com/nguyentantai21042004/minutes-bot/internal/retriever"
	"github.com/nguyentantai21042004/minutes-bot/internal/summarizer"
	"github.com/nguyentantai21042004/minutes-bot/internal/transcoder"
	"github.com/nguyentantai21042004/minutes-bot/internal/transcriber"
)

// Deps are the collaborators of a Pipeline
type Deps struct {
	Files       FileLookup
	Messenger   Messenger
	Retriever   retriever.Retriever
	Transcoder  transcoder.Transcoder
	Transcriber transcriber.Transcriber
	Summarizer  summarizer.Summarizer
	Logger      logger.Logger
}

type Options struct {
	// ScratchDir is the parent of the per-run directories
	ScratchDir string
	AttachDocx bool

	Now      func() time.Time
	NewRunID func() string
}

type implPipeline struct {
	Deps
	scratchDir string
	attachDocx bool
	now        func() time.Time
	newRunID   func() string
}

// New creates a new Pipeline instance
func New(deps Deps, opts Options) Pipeline {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewRunID == nil {
		opts.NewRunID = func() string { return uuid.NewString() }
	}

	return &implPipeline{
		Deps:       deps,
		scratchDir: opts.ScratchDir,
		attachDocx: opts.AttachDocx,
		now:        opts.Now,
		newRunID:   opts.NewRunID,
	}
}
