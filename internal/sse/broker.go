// Package sse implements a Server-Sent Events broker for corpus change notifications.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/starford/credenda/internal/content"
)

// Event types.
const (
	TypeArticleUpdated = "article.updated"
	TypeServiceUpdated = "service.updated"
	TypeIndexUpdated   = "index.updated"
	TypeCorpusUpdated  = "corpus.updated"
)

// Event represents an SSE event to broadcast.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ContentEvent is the payload of a per-document change event.
type ContentEvent struct {
	Key      string `json:"key"`
	Location string `json:"location"`
}

type contentEventReq struct {
	kind string
	key  string
}

type subscription struct {
	ch       chan []byte
	location string
}

// Broker manages SSE client connections and broadcasts events.
//
// A single event loop goroutine owns the client set, the frame sequence
// and the corpus throttle timestamp. Public methods talk to it over
// channels.
//
// A client may subscribe to one location; it then only receives document
// events for that location, plus every event without a location.
type Broker struct {
	corpusMin time.Duration

	subscribeCh    chan subscription
	unsubscribeCh  chan chan []byte
	publishCh      chan Event
	contentEventCh chan contentEventReq
	countReqCh     chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a new SSE broker. corpusThrottle is the minimum spacing
// between corpus.updated events.
func NewBroker(corpusThrottle time.Duration) *Broker {
	if corpusThrottle <= 0 {
		corpusThrottle = 2 * time.Second
	}

	b := &Broker{
		corpusMin:      corpusThrottle,
		subscribeCh:    make(chan subscription),
		unsubscribeCh:  make(chan chan []byte),
		publishCh:      make(chan Event, 256),
		contentEventCh: make(chan contentEventReq, 256),
		countReqCh:     make(chan chan int),
		stopCh:         make(chan struct{}),
		stopped:        make(chan struct{}),
	}

	go b.run()
	return b
}

func (b *Broker) run() {
	defer close(b.stopped)

	clients := make(map[chan []byte]string)
	var (
		seq        uint64
		lastCorpus time.Time
	)

	// broadcast frames event once and fans it out. An empty location
	// reaches every client.
	broadcast := func(event Event, location string) {
		payload, err := json.Marshal(event.Data)
		if err != nil {
			return
		}
		seq++
		raw := []byte(fmt.Sprintf("id: %d\nevent: %s\ndata: %s\n\n", seq, event.Type, payload))

		for ch, want := range clients {
			if want != "" && location != "" && want != location {
				continue
			}
			select {
			case ch <- raw:
			default:
				// Slow client; drop rather than stall the loop.
			}
		}
	}

	for {
		select {
		case <-b.stopCh:
			for ch := range clients {
				close(ch)
			}
			return

		case sub := <-b.subscribeCh:
			clients[sub.ch] = sub.location

		case ch := <-b.unsubscribeCh:
			if _, ok := clients[ch]; ok {
				delete(clients, ch)
				close(ch)
			}

		case event := <-b.publishCh:
			broadcast(event, "")

		case req := <-b.contentEventCh:
			typ, data, ok := contentEvent(req)
			if !ok {
				continue
			}
			broadcast(Event{Type: typ, Data: data}, data.Location)

			if now := time.Now(); now.Sub(lastCorpus) >= b.corpusMin {
				lastCorpus = now
				broadcast(Event{Type: TypeCorpusUpdated, Data: map[string]string{}}, "")
			}

		case resp := <-b.countReqCh:
			resp <- len(clients)
		}
	}
}

// contentEvent maps a document kind and key to the event announcing it.
func contentEvent(req contentEventReq) (string, ContentEvent, bool) {
	switch req.kind {
	case content.KindIndex:
		return TypeIndexUpdated, ContentEvent{Key: req.key, Location: "/"}, true
	case content.KindArticle:
		n := strings.TrimPrefix(req.key, content.ArticlePrefix)
		return TypeArticleUpdated, ContentEvent{Key: req.key, Location: "/article/" + n}, true
	case content.KindService:
		id := strings.TrimPrefix(req.key, content.ServicePrefix)
		return TypeServiceUpdated, ContentEvent{Key: req.key, Location: "/daily/" + id}, true
	}
	return "", ContentEvent{}, false
}

// Close gracefully stops broker loop and closes all client channels.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe adds a new client and returns its channel. A non-empty
// location limits document events to that location.
func (b *Broker) Subscribe(location string) chan []byte {
	ch := make(chan []byte, 64)
	if b.closed.Load() {
		close(ch)
		return ch
	}

	select {
	case b.subscribeCh <- subscription{ch: ch, location: location}:
	case <-b.stopped:
		close(ch)
	}

	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	if b.closed.Load() {
		return
	}
	select {
	case b.unsubscribeCh <- ch:
	case <-b.stopped:
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}

	resp := make(chan int, 1)
	select {
	case b.countReqCh <- resp:
	case <-b.stopped:
		return 0
	}

	select {
	case n := <-resp:
		return n
	case <-b.stopped:
		return 0
	}
}

// Publish sends an event to all connected clients.
func (b *Broker) Publish(event Event) {
	if b.closed.Load() {
		return
	}
	select {
	case b.publishCh <- event:
	case <-b.stopped:
	}
}

// PublishContentEvent announces a changed document of the given kind
// (see content.ClassifyKey), followed by a throttled corpus.updated.
// Unknown kinds are ignored.
func (b *Broker) PublishContentEvent(kind, key string) {
	if b.closed.Load() {
		return
	}
	select {
	case b.contentEventCh <- contentEventReq{kind: kind, key: key}:
	case <-b.stopped:
	}
}

// ServeHTTP is the SSE endpoint handler (GET /api/events). The optional
// location query parameter narrows the stream, e.g. ?location=/article/7.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := b.Subscribe(r.URL.Query().Get("location"))
	defer b.Unsubscribe(ch)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
