// Package stream provides a streaming, event-at-a-time API for HTML
// parsing: callers read Events off a channel instead of waiting for a
// full document tree, which suits one-pass extraction and large inputs.
package stream

import (
	"github.com/go-html5/html5/encoding"
	"github.com/go-html5/html5/tokenizer"
)

// EventType classifies a streamed parsing event.
type EventType int

const (
	StartTagEvent EventType = iota
	EndTagEvent
	TextEvent
	CommentEvent
	DoctypeEvent
)

func (e EventType) String() string {
	names := [...]string{"StartTag", "EndTag", "Text", "Comment", "Doctype"}
	if int(e) < len(names) {
		return names[e]
	}
	return "Unknown"
}

// Event is one token's worth of streamed parsing output. Which fields
// are meaningful depends on Type: Attrs only for StartTagEvent,
// PublicID/SystemID only for DoctypeEvent, and so on.
type Event struct {
	Type  EventType
	Name  string
	Attrs map[string]string
	Data  string

	PublicID string
	SystemID string
}

// Stream tokenizes html and emits one Event per token on the returned
// channel, which closes when tokenization reaches EOF. Options are
// accepted for symmetry with StreamBytes; none currently affect string
// input, which is already decoded.
func Stream(html string, opts ...Option) <-chan Event {
	_ = resolveSettings(opts)
	ch := make(chan Event)
	go func() {
		defer close(ch)
		emitTokens(html, ch)
	}()
	return ch
}

// StreamBytes decodes raw bytes to a string, applying WithEncoding if
// given or else falling back to the usual BOM/meta-charset/windows-1252
// sniffing, then streams it exactly like Stream.
func StreamBytes(html []byte, opts ...Option) <-chan Event {
	s := resolveSettings(opts)
	decoded, _, err := encoding.Decode(html, s.encodingHint)
	if err != nil {
		ch := make(chan Event)
		close(ch)
		return ch
	}
	return Stream(decoded)
}

func optionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func emitTokens(html string, ch chan<- Event) {
	tok := tokenizer.New(html)

	for {
		token := tok.Next()

		switch token.Type {
		case tokenizer.StartTag:
			ch <- Event{Type: StartTagEvent, Name: token.Name, Attrs: tokenizer.AttrsToMap(token.Attrs)}

		case tokenizer.EndTag:
			ch <- Event{Type: EndTagEvent, Name: token.Name}

		case tokenizer.Character:
			ch <- Event{Type: TextEvent, Data: token.Data}

		case tokenizer.Comment:
			ch <- Event{Type: CommentEvent, Data: token.Data}

		case tokenizer.DOCTYPE:
			ch <- Event{
				Type:     DoctypeEvent,
				Name:     token.Name,
				PublicID: optionalString(token.PublicID),
				SystemID: optionalString(token.SystemID),
			}

		case tokenizer.EOF:
			return

		case tokenizer.Error:
			continue
		}
	}
}
