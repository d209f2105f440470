package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Format selects the slot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultDebounce is the idle window between the last Set and the durable
// write.
const DefaultDebounce = 5 * time.Second

// Binding binds one slot key to an in-memory value of a serializable type.
//
// Set and Update commit synchronously: the new value is visible to Get
// immediately. The durable write is debounced; each commit (re)starts an idle
// timer, and only when the window elapses is the latest committed value
// serialized and written, so rapid-fire edits coalesce into a single write.
// Close cancels a pending timer without flushing — an edit made inside the
// last window before teardown is lost. That is the accepted trade-off of the
// write-behind design; callers that need durability at a known point call
// Flush.
//
// Storage failures never reach the caller: a missing or corrupt slot falls
// back to the Load default, and serialization or write failures are logged.
type Binding[T any] struct {
	slot     Slot
	key      string
	format   Format
	debounce time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	value  T
	loaded bool
	timer  *time.Timer
	closed bool
}

// BindingOption configures a Binding.
type BindingOption func(*bindingConfig)

type bindingConfig struct {
	format   Format
	debounce time.Duration
	logger   *slog.Logger
}

// WithFormat selects json or yaml encoding for the slot. Defaults to json.
func WithFormat(f Format) BindingOption {
	return func(c *bindingConfig) {
		if f == FormatJSON || f == FormatYAML {
			c.format = f
		}
	}
}

// WithDebounce overrides the idle window. Intended for tests; production
// callers keep the default.
func WithDebounce(d time.Duration) BindingOption {
	return func(c *bindingConfig) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithLogger sets the logger used for storage failures and autosave notices.
func WithLogger(l *slog.Logger) BindingOption {
	return func(c *bindingConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewBinding creates a binding for the given slot key. Load must be called
// before the first Get.
func NewBinding[T any](slot Slot, key string, opts ...BindingOption) *Binding[T] {
	cfg := bindingConfig{
		format:   FormatJSON,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Binding[T]{
		slot:     slot,
		key:      key,
		format:   cfg.format,
		debounce: cfg.debounce,
		logger:   cfg.logger,
	}
}

// Load reads and decodes the slot, falling back to defaultValue on a missing
// key, a corrupt slot, or a decode failure. Failures are logged, never
// returned; Load cannot fail from the caller's point of view.
func (b *Binding[T]) Load(defaultValue T) T {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.value = defaultValue
	b.loaded = true

	data, err := b.slot.Read(b.key)
	if err != nil {
		if err == ErrSlotNotFound {
			b.logger.Debug("slot empty, using default", "key", b.key)
		} else {
			b.logger.Warn("slot unreadable, using default", "key", b.key, "error", err)
		}
		return b.value
	}

	var decoded T
	if err := unmarshalValue(data, b.format, &decoded); err != nil {
		b.logger.Warn("slot undecodable, using default", "key", b.key, "error", err)
		return b.value
	}
	b.value = decoded
	return b.value
}

// Get returns the current in-memory value. The most recent Set is always
// visible here even while its durable write is still pending.
func (b *Binding[T]) Get() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Set commits a new value and schedules the debounced durable write.
func (b *Binding[T]) Set(value T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = value
	b.scheduleLocked()
}

// Update commits the result of applying fn to the previous value. fn runs
// synchronously under the binding's lock and must be pure.
func (b *Binding[T]) Update(fn func(T) T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = fn(b.value)
	b.scheduleLocked()
}

// scheduleLocked restarts the idle timer. The fired timer re-reads the value
// under the lock, so the write always carries the latest committed state, not
// the state captured when the timer was armed.
func (b *Binding[T]) scheduleLocked() {
	if b.closed {
		return
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.debounce, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.closed {
			return
		}
		b.timer = nil
		b.writeLocked()
	})
}

// Flush cancels any pending timer and writes the current value immediately.
func (b *Binding[T]) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.writeLocked()
}

// Close cancels a pending write without flushing it and detaches the binding
// from its slot. Idempotent.
func (b *Binding[T]) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	return nil
}

// writeLocked serializes and writes the current value. Failures are logged,
// never propagated.
func (b *Binding[T]) writeLocked() {
	data, err := marshalValue(b.value, b.format)
	if err != nil {
		b.logger.Warn("autosave skipped, value not serializable", "key", b.key, "error", err)
		return
	}
	if err := b.slot.Write(b.key, data); err != nil {
		b.logger.Warn("autosave failed", "key", b.key, "error", err)
		return
	}
	b.logger.Debug("autosave", "key", b.key, "bytes", len(data))
}

func marshalValue(v any, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(v)
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

func unmarshalValue(data []byte, f Format, v any) error {
	switch f {
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatJSON:
		return json.Unmarshal(data, v)
	default:
		return fmt.Errorf("unsupported slot format: %s", f)
	}
}
