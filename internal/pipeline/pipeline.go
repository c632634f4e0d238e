package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/minutes-bot/internal/minutes"
	"github.com/nguyentantai21042004/minutes-bot/internal/models"
	"github.com/nguyentantai21042004/minutes-bot/internal/progress"
	"github.com/nguyentantai21042004/minutes-bot/internal/summarizer"
)

const notifyTimeout = 10 * time.Second

// run is the per-event working set
type run struct {
	ev       models.ShareEvent
	meta     models.FileMetadata
	dir      string
	statusTS string
	reporter *progress.Reporter
	state    State
}

// Run processes one share event end to end. A non-nil error means the run
// stopped before results were posted; the status message already says why.
func (p *implPipeline) Run(ctx context.Context, ev models.ShareEvent) error {
	startTime := p.now()
	p.Logger.Info(ctx, "File shared by %s in %s with file ID %s", ev.UserID, ev.ChannelID, ev.FileID)

	meta, err := p.Files.FileInfo(ctx, ev.FileID)
	if err != nil {
		return &StageError{Stage: StateReceived, Err: fmt.Errorf("file info %s: %w", ev.FileID, err)}
	}
	if !models.IsMedia(meta.Name, meta.Mimetype) {
		p.Logger.Info(ctx, "Skipping non-media file: %s (%s)", meta.Name, meta.Mimetype)
		return nil
	}

	r := &run{ev: ev, meta: meta, state: StateReceived}

	log := progress.NewLog(p.now)
	first := log.Add("Starting summary, please wait: %s", meta.Name)
	p.Logger.Info(ctx, "%s", first)
	r.statusTS, err = p.Messenger.PostMessage(ctx, ev.ChannelID, log.String())
	if err != nil {
		return &StageError{Stage: StateReceived, Err: fmt.Errorf("post status message: %w", err)}
	}
	r.reporter = progress.NewReporter(log, progress.PublisherFunc(func(ctx context.Context, text string) error {
		return p.Messenger.UpdateMessage(ctx, ev.ChannelID, r.statusTS, text)
	}), p.Logger)

	r.dir = filepath.Join(p.scratchDir, p.newRunID())
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return p.fail(ctx, r, fmt.Errorf("create run directory: %w", err))
	}
	defer func() {
		p.enter(ctx, r, StateCleanup)
		if err := Cleanup(r.dir); err != nil {
			p.Logger.Warn(ctx, "Failed to cleanup %s: %v", r.dir, err)
		} else {
			p.Logger.Debug(ctx, "Cleaned up run directory: %s", r.dir)
		}
		p.enter(ctx, r, StateDone)
	}()

	result, err := p.process(ctx, r)
	if err != nil {
		return err
	}

	p.enter(ctx, r, StatePosting)
	if err := p.post(ctx, r, result); err != nil {
		return p.fail(ctx, r, err)
	}
	r.reporter.Append(ctx, "Results posted")

	p.Logger.Info(ctx, "Run for %s completed in %s", meta.Name, p.now().Sub(startTime))
	return nil
}

// process runs the four stages strictly in sequence
func (p *implPipeline) process(ctx context.Context, r *run) (models.Result, error) {
	p.enter(ctx, r, StateDownloading)
	srcPath, err := p.Retriever.Retrieve(ctx, r.meta, r.dir)
	if err != nil {
		return models.Result{}, p.fail(ctx, r, err)
	}
	p.enter(ctx, r, StateDownloaded)
	r.reporter.Append(ctx, "File saved: %s", filepath.Base(srcPath))

	p.enter(ctx, r, StateTranscoding)
	r.reporter.Append(ctx, "Audio conversion started: %s", filepath.Base(srcPath))
	wavPath, err := p.Transcoder.Transcode(ctx, srcPath, r.dir)
	if err != nil {
		return models.Result{}, p.fail(ctx, r, err)
	}
	p.enter(ctx, r, StateTranscoded)
	r.reporter.Append(ctx, "Audio conversion finished")

	p.enter(ctx, r, StateTranscribing)
	r.reporter.Append(ctx, "Transcription started (%s): %s", p.Transcriber.Name(), filepath.Base(wavPath))
	transcript, err := p.Transcriber.Transcribe(ctx, wavPath)
	if err != nil {
		return models.Result{}, p.fail(ctx, r, err)
	}
	p.enter(ctx, r, StateTranscribed)
	r.reporter.Append(ctx, "Transcription finished")

	p.enter(ctx, r, StateSummarizing)
	r.reporter.Append(ctx, "Summarization request sent (%s)", p.Summarizer.Name())
	resp, err := p.Summarizer.Summarize(ctx, summarizer.Request{Query: transcript})
	if err != nil {
		return models.Result{}, p.fail(ctx, r, err)
	}
	p.enter(ctx, r, StateSummarized)
	r.reporter.Append(ctx, "Summarization response received")

	return models.Result{Summary: resp.Answer, Transcript: transcript}, nil
}

// post writes the summary and transcript replies under the status message
func (p *implPipeline) post(ctx context.Context, r *run, result models.Result) error {
	replies := append(splitText("Summary:\n"+result.Summary, maxReplyLen), splitText("Transcript:\n"+result.Transcript, maxReplyLen)...)
	for _, text := range replies {
		if err := p.Messenger.PostReply(ctx, r.ev.ChannelID, r.statusTS, text); err != nil {
			return fmt.Errorf("post reply: %w", err)
		}
	}

	if p.attachDocx {
		p.attachMinutes(ctx, r, result)
	}
	return nil
}

// attachMinutes uploads a .docx of the results. Failures only warn since
// the text replies are already in the thread.
func (p *implPipeline) attachMinutes(ctx context.Context, r *run, result models.Result) {
	base := r.meta.Name[:len(r.meta.Name)-len(filepath.Ext(r.meta.Name))]
	if base == "" {
		base = "minutes"
	}
	docxPath := filepath.Join(r.dir, "minutes.docx")

	if err := minutes.Render(docxPath, r.meta.Name, result.Summary, result.Transcript); err != nil {
		p.Logger.Warn(ctx, "Failed to render minutes document: %v", err)
		return
	}
	if err := p.Messenger.UploadFile(ctx, r.ev.ChannelID, r.statusTS, docxPath, base+"_minutes.docx"); err != nil {
		p.Logger.Warn(ctx, "Failed to upload minutes document: %v", err)
	}
}

// enter moves r to the next state
func (p *implPipeline) enter(ctx context.Context, r *run, next State) {
	p.Logger.Debug(ctx, "Run %s state: %s -> %s", r.ev.Key(), r.state, next)
	r.state = next
}

// fail appends a failure line for the current state to the status message
// and returns a StageError. The update uses a detached context so that a
// shutdown still gets reported.
func (p *implPipeline) fail(ctx context.Context, r *run, err error) error {
	stage := r.state
	stageErr := &StageError{Stage: stage, Err: err}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		r.reporter.Append(notifyCtx, "Processing interrupted at %s", stage)
	} else {
		r.reporter.Append(notifyCtx, "%s", stageErr.Error())
	}

	p.Logger.Error(ctx, "Run for %s stopped: %v", r.meta.Name, stageErr)
	return stageErr
}
