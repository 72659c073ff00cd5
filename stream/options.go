// Package stream offers an event-based, low-memory way to walk an HTML5
// document without building a full DOM tree.
package stream

// settings holds the resolved configuration for a streaming parse.
type settings struct {
	encodingHint string
}

// Option adjusts how Stream/StreamBytes interpret their input.
type Option func(*settings)

// WithEncoding pins the character encoding used to decode byte input,
// bypassing BOM and meta-charset sniffing. Typical values: "utf-8",
// "windows-1252", "iso-8859-1".
func WithEncoding(enc string) Option {
	return func(s *settings) {
		s.encodingHint = enc
	}
}

func resolveSettings(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
