package slackbot

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/minutes-bot/internal/logger"
	"github.com/nguyentantai21042004/minutes-bot/internal/models"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

func TestClassify(t *testing.T) {
	fileShared := slackevents.EventsAPIEvent{
		Type: slackevents.CallbackEvent,
		InnerEvent: slackevents.EventsAPIInnerEvent{
			Type: "file_shared",
			Data: &slackevents.FileSharedEvent{Type: "file_shared", FileID: "F1", UserID: "U1", ChannelID: "C1"},
		},
	}

	tests := []struct {
		name   string
		evt    socketmode.Event
		wantOK bool
	}{
		{
			name:   "file shared",
			evt:    socketmode.Event{Type: socketmode.EventTypeEventsAPI, Data: fileShared},
			wantOK: true,
		},
		{
			name:   "slash command",
			evt:    socketmode.Event{Type: socketmode.EventTypeSlashCommand, Data: slack.SlashCommand{}},
			wantOK: false,
		},
		{
			name: "app mention",
			evt: socketmode.Event{Type: socketmode.EventTypeEventsAPI, Data: slackevents.EventsAPIEvent{
				Type: slackevents.CallbackEvent,
				InnerEvent: slackevents.EventsAPIInnerEvent{
					Type: "app_mention",
					Data: &slackevents.AppMentionEvent{Text: "hi"},
				},
			}},
			wantOK: false,
		},
		{
			name:   "url verification",
			evt:    socketmode.Event{Type: socketmode.EventTypeEventsAPI, Data: slackevents.EventsAPIEvent{Type: slackevents.URLVerification}},
			wantOK: false,
		},
		{
			name: "missing channel",
			evt: socketmode.Event{Type: socketmode.EventTypeEventsAPI, Data: slackevents.EventsAPIEvent{
				Type: slackevents.CallbackEvent,
				InnerEvent: slackevents.EventsAPIInnerEvent{
					Type: "file_shared",
					Data: &slackevents.FileSharedEvent{FileID: "F1"},
				},
			}},
			wantOK: false,
		},
		{
			name:   "unexpected payload",
			evt:    socketmode.Event{Type: socketmode.EventTypeEventsAPI, Data: "raw"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok, reason := classify(tt.evt)
			if ok != tt.wantOK {
				t.Fatalf("classify() ok = %v, want %v (reason %q)", ok, tt.wantOK, reason)
			}
			if !ok && reason == "" {
				t.Error("skipped event without a reason")
			}
			if ok && (ev.FileID != "F1" || ev.UserID != "U1" || ev.ChannelID != "C1") {
				t.Errorf("classify() = %+v", ev)
			}
		})
	}
}

type recordedCall struct {
	method string
	form   map[string]string
}

func newTestAPI(t *testing.T) (*slack.Client, func() []recordedCall) {
	t.Helper()
	var mu sync.Mutex
	var calls []recordedCall

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() error = %v", err)
		}
		form := make(map[string]string)
		for k := range r.Form {
			form[k] = r.Form.Get(k)
		}

		mu.Lock()
		calls = append(calls, recordedCall{method: r.URL.Path, form: form})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		var resp interface{}
		switch r.URL.Path {
		case "/chat.postMessage":
			resp = map[string]interface{}{"ok": true, "channel": "C1", "ts": "1700000000.000100"}
		case "/chat.update":
			resp = map[string]interface{}{"ok": true, "channel": "C1", "ts": form["ts"], "text": form["text"]}
		case "/files.info":
			resp = map[string]interface{}{"ok": true, "file": map[string]interface{}{
				"id":                   "F1",
				"name":                 "meeting.mp4",
				"mimetype":             "video/mp4",
				"filetype":             "mp4",
				"size":                 2048,
				"url_private":          "https://files.example/private",
				"url_private_download": "https://files.example/download",
			}}
		default:
			resp = map[string]interface{}{"ok": false, "error": "unknown_method"}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	api := slack.New("xoxb-test", slack.OptionAPIURL(srv.URL+"/"))
	return api, func() []recordedCall {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedCall(nil), calls...)
	}
}

func TestMessengerPostAndUpdate(t *testing.T) {
	api, calls := newTestAPI(t)
	m := NewMessenger(api)
	ctx := context.Background()

	ts, err := m.PostMessage(ctx, "C1", "[10:00:00.000] Starting")
	if err != nil {
		t.Fatalf("PostMessage() error = %v", err)
	}
	if ts != "1700000000.000100" {
		t.Errorf("PostMessage() ts = %q", ts)
	}
	if err := m.UpdateMessage(ctx, "C1", ts, "[10:00:00.000] Starting\n[10:00:01.000] File saved"); err != nil {
		t.Fatalf("UpdateMessage() error = %v", err)
	}
	if err := m.PostReply(ctx, "C1", ts, "Summary:\nGreeting detected."); err != nil {
		t.Fatalf("PostReply() error = %v", err)
	}

	got := calls()
	if len(got) != 3 {
		t.Fatalf("calls = %d, want 3", len(got))
	}
	if got[1].method != "/chat.update" || got[1].form["ts"] != ts {
		t.Errorf("update call = %+v", got[1])
	}
	if got[2].form["thread_ts"] != ts {
		t.Errorf("reply thread_ts = %q, want %q", got[2].form["thread_ts"], ts)
	}
	if _, ok := got[0].form["thread_ts"]; ok {
		t.Error("status message posted as a reply")
	}
}

func TestMessengerFileInfo(t *testing.T) {
	api, _ := newTestAPI(t)

	meta, err := NewMessenger(api).FileInfo(context.Background(), "F1")
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}
	if meta.URL != "https://files.example/download" || meta.Name != "meeting.mp4" || meta.Size != 2048 {
		t.Errorf("FileInfo() = %+v", meta)
	}
}

func TestMessengerUploadMissingFile(t *testing.T) {
	api, calls := newTestAPI(t)

	if err := NewMessenger(api).UploadFile(context.Background(), "C1", "", "/nonexistent/minutes.docx", ""); err == nil {
		t.Error("UploadFile() error = nil")
	}
	if n := len(calls()); n != 0 {
		t.Errorf("calls = %d, want 0", n)
	}
}

type recordingAcker struct {
	calls *[]string
}

func (a recordingAcker) Ack(req socketmode.Request, payload ...interface{}) {
	*a.calls = append(*a.calls, "ack:"+req.EnvelopeID)
}

func TestHandle(t *testing.T) {
	fileShared := slackevents.EventsAPIEvent{
		Type: slackevents.CallbackEvent,
		InnerEvent: slackevents.EventsAPIInnerEvent{
			Type: "file_shared",
			Data: &slackevents.FileSharedEvent{Type: "file_shared", FileID: "F1", UserID: "U1", ChannelID: "C1"},
		},
	}
	appMention := slackevents.EventsAPIEvent{
		Type: slackevents.CallbackEvent,
		InnerEvent: slackevents.EventsAPIInnerEvent{
			Type: "app_mention",
			Data: &slackevents.AppMentionEvent{Text: "hi"},
		},
	}

	tests := []struct {
		name      string
		evt       socketmode.Event
		accept    bool
		wantCalls []string
		wantLog   string
	}{
		{
			name:      "file shared acks before sink",
			evt:       socketmode.Event{Type: socketmode.EventTypeEventsAPI, Data: fileShared, Request: &socketmode.Request{Type: "events_api", EnvelopeID: "env-1"}},
			accept:    true,
			wantCalls: []string{"ack:env-1", "sink:F1"},
			wantLog:   "File shared by U1 in C1",
		},
		{
			name:      "queue refusal is logged",
			evt:       socketmode.Event{Type: socketmode.EventTypeEventsAPI, Data: fileShared, Request: &socketmode.Request{Type: "events_api", EnvelopeID: "env-2"}},
			accept:    false,
			wantCalls: []string{"ack:env-2", "sink:F1"},
			wantLog:   "File F1 was not queued",
		},
		{
			name:      "other inner event acked and skipped",
			evt:       socketmode.Event{Type: socketmode.EventTypeEventsAPI, Data: appMention, Request: &socketmode.Request{Type: "events_api", EnvelopeID: "env-3"}},
			wantCalls: []string{"ack:env-3"},
			wantLog:   "Skipped processing: event type app_mention",
		},
		{
			name:      "slash command acked",
			evt:       socketmode.Event{Type: socketmode.EventTypeSlashCommand, Data: slack.SlashCommand{}, Request: &socketmode.Request{Type: "slash_commands", EnvelopeID: "env-4"}},
			wantCalls: []string{"ack:env-4"},
			wantLog:   "Skipped processing",
		},
		{
			name:    "hello not acked",
			evt:     socketmode.Event{Type: socketmode.EventTypeHello, Request: &socketmode.Request{Type: "hello"}},
			wantLog: "Socket Mode hello",
		},
		{
			name:    "disconnect not acked",
			evt:     socketmode.Event{Type: socketmode.EventTypeDisconnect, Request: &socketmode.Request{Type: "disconnect"}},
			wantLog: "Socket Mode disconnect",
		},
		{
			name:      "events_api without envelope not acked",
			evt:       socketmode.Event{Type: socketmode.EventTypeEventsAPI, Data: appMention, Request: &socketmode.Request{Type: "events_api"}},
			wantCalls: nil,
			wantLog:   "Skipped processing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []string
			var buf bytes.Buffer
			l := &implListener{
				acker: recordingAcker{calls: &calls},
				sink: func(ctx context.Context, ev models.ShareEvent) bool {
					calls = append(calls, "sink:"+ev.FileID)
					return tt.accept
				},
				logger: logger.NewWithWriter(&buf, "debug", "text"),
			}

			l.handle(context.Background(), tt.evt)

			if len(calls) != len(tt.wantCalls) {
				t.Fatalf("calls = %q, want %q", calls, tt.wantCalls)
			}
			for i := range calls {
				if calls[i] != tt.wantCalls[i] {
					t.Errorf("calls[%d] = %q, want %q", i, calls[i], tt.wantCalls[i])
				}
			}
			if !bytes.Contains(buf.Bytes(), []byte(tt.wantLog)) {
				t.Errorf("log = %q, want it to contain %q", buf.String(), tt.wantLog)
			}
		})
	}
}
