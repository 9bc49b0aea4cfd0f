package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBotServer answers the Bot API endpoints the notifier touches.
func fakeBotServer(t *testing.T) *bot.Bot {
	t.Helper()
	var nextMessageID atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			id := nextMessageID.Add(1)
			fmt.Fprintf(w, `{"ok":true,"result":{"message_id":%d,"chat":{"id":7}}}`, id)
		default:
			fmt.Fprint(w, `{"ok":true,"result":true}`)
		}
	}))
	t.Cleanup(srv.Close)

	b, err := bot.New("12345:test",
		bot.WithServerURL(srv.URL),
		bot.WithSkipGetMe(),
	)
	require.NoError(t, err)
	return b
}

func TestConfirmResolvesWithAnswer(t *testing.T) {
	n := NewNotifier(fakeBotServer(t))

	go func() {
		for !n.Resolve(7, true) {
			time.Sleep(10 * time.Millisecond)
		}
	}()

	ok := n.Confirm(context.Background(), 7, "Proceed?", ConfirmOptions{})
	assert.True(t, ok)
}

func TestConfirmSecondDialogReplacesFirst(t *testing.T) {
	n := NewNotifier(fakeBotServer(t))

	firstResult := make(chan bool, 1)
	go func() {
		firstResult <- n.Confirm(context.Background(), 7, "First?", ConfirmOptions{})
	}()

	// Wait until the first dialog is registered.
	require.Eventually(t, func() bool {
		n.mu.Lock()
		defer n.mu.Unlock()
		return n.confirms[7] != nil
	}, time.Second, 10*time.Millisecond)

	secondResult := make(chan bool, 1)
	go func() {
		secondResult <- n.Confirm(context.Background(), 7, "Second?", ConfirmOptions{})
	}()

	// The replaced dialog reports false as soon as the second one registers.
	select {
	case first := <-firstResult:
		assert.False(t, first, "a replaced dialog reports false")
	case <-time.After(time.Second):
		t.Fatal("replaced confirm never returned")
	}

	for !n.Resolve(7, true) {
		time.Sleep(10 * time.Millisecond)
	}
	select {
	case second := <-secondResult:
		assert.True(t, second, "the live dialog gets the answer")
	case <-time.After(time.Second):
		t.Fatal("live confirm never returned")
	}
}

func TestConfirmAcceptsAnswerDuringSend(t *testing.T) {
	release := make(chan struct{})
	var sends atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/sendMessage") {
			if sends.Add(1) == 1 {
				<-release
			}
			fmt.Fprint(w, `{"ok":true,"result":{"message_id":1,"chat":{"id":7}}}`)
			return
		}
		fmt.Fprint(w, `{"ok":true,"result":true}`)
	}))
	t.Cleanup(srv.Close)

	b, err := bot.New("12345:test", bot.WithServerURL(srv.URL), bot.WithSkipGetMe())
	require.NoError(t, err)
	n := NewNotifier(b)

	result := make(chan bool, 1)
	go func() {
		result <- n.Confirm(context.Background(), 7, "Proceed?", ConfirmOptions{})
	}()

	// The tap lands while the dialog message is still being sent.
	require.Eventually(t, func() bool {
		return n.Resolve(7, true)
	}, time.Second, 5*time.Millisecond)
	close(release)

	select {
	case ok := <-result:
		assert.True(t, ok, "an answer during the send must not be dropped")
	case <-time.After(time.Second):
		t.Fatal("confirm never returned")
	}
}

func TestConfirmContextCancellation(t *testing.T) {
	n := NewNotifier(fakeBotServer(t))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	ok := n.Confirm(ctx, 7, "Proceed?", ConfirmOptions{})
	assert.False(t, ok)
}

func TestResolveWithoutDialog(t *testing.T) {
	n := NewNotifier(fakeBotServer(t))
	assert.False(t, n.Resolve(7, true))
}
