// Package id provides ULID-based identifiers for the device core.
//
// ULIDs are lexicographically sortable by creation time, which keeps
// notification ids in posting order even when the device runs on a fake
// clock. Every id type carries a short prefix so logs stay readable.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// NotificationID identifies a posted notification
type NotificationID string

// RequestID identifies an outbound AI service request
type RequestID string

// ConnectionID identifies a render-stream client
type ConnectionID string

const (
	NotificationPrefix = "ntf"
	RequestPrefix      = "req"
	ConnectionPrefix   = "conn"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand with monotonic
// entropy, so ids minted in the same millisecond still sort in call order.
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(ulid.Monotonic(rand.Reader, 0))
}

// NewGeneratorWithEntropy creates a generator with custom entropy source
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// GenerateAt creates a ULID stamped with t
func (g *Generator) GenerateAt(t time.Time) ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), g.entropy)
}

// Generate creates a ULID stamped with the wall clock
func (g *Generator) Generate() ulid.ULID {
	return g.GenerateAt(time.Now())
}

// WithPrefix formats a prefixed ULID string
func WithPrefix(prefix string, u ulid.ULID) string {
	return fmt.Sprintf("%s_%s", prefix, u.String())
}

// NewNotificationID mints a notification id stamped with the device time
func NewNotificationID(at time.Time) NotificationID {
	return NotificationID(WithPrefix(NotificationPrefix, Default().GenerateAt(at)))
}

// NewRequestID mints an AI request id
func NewRequestID() RequestID {
	return RequestID(WithPrefix(RequestPrefix, Default().Generate()))
}

// NewConnectionID mints a render-stream connection id
func NewConnectionID() ConnectionID {
	return ConnectionID(WithPrefix(ConnectionPrefix, Default().Generate()))
}

func (id NotificationID) String() string { return string(id) }
func (id RequestID) String() string      { return string(id) }
func (id ConnectionID) String() string   { return string(id) }

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}

// Timestamp extracts the timestamp from an unprefixed ULID
func Timestamp(id string) (time.Time, error) {
	parsed, err := ulid.Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
