package slack_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	slackinfra "github.com/panelkit/panelship/pkg/infra/slack"
	"github.com/slack-go/slack"
	"github.com/tidwall/gjson"
)

func TestWebhook_Post(t *testing.T) {
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	msg := &slack.WebhookMessage{
		Blocks: &slack.Blocks{BlockSet: []slack.Block{
			slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, "hello", false, false), nil, nil),
		}},
	}

	err := slackinfra.NewWebhook().Post(context.Background(), server.URL, msg)
	gt.NoError(t, err)

	gt.Value(t, gjson.GetBytes(body, "blocks.#").Int()).Equal(int64(1))
	gt.Value(t, gjson.GetBytes(body, "blocks.0.type").String()).Equal("section")
	gt.Value(t, gjson.GetBytes(body, "blocks.0.text.type").String()).Equal("mrkdwn")
	gt.Value(t, gjson.GetBytes(body, "blocks.0.text.text").String()).Equal("hello")
}

func TestWebhook_Post_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := slackinfra.NewWebhook().Post(context.Background(), server.URL, &slack.WebhookMessage{Text: "x"})
	gt.Error(t, err)
}
