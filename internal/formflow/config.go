// Package formflow models the multi-step public testimonial form: an ordered
// list of blocks, a cursor that walks the enabled ones, and the rating branch
// that sends unhappy customers to a private feedback step.
package formflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// BlockType names one kind of form step.
type BlockType string

const (
	BlockWelcome          BlockType = "welcome"
	BlockRating           BlockType = "rating"
	BlockQuestion         BlockType = "question"
	BlockNegativeFeedback BlockType = "negative_feedback"
	BlockConsent          BlockType = "consent"
	BlockCustomerDetails  BlockType = "customer_details"
	BlockThankYou         BlockType = "thank_you"
)

// DefaultThreshold is the rating at or below which the rating block redirects.
const DefaultThreshold = 3

var knownBlocks = map[BlockType]bool{
	BlockWelcome:          true,
	BlockRating:           true,
	BlockQuestion:         true,
	BlockNegativeFeedback: true,
	BlockConsent:          true,
	BlockCustomerDetails:  true,
	BlockThankYou:         true,
}

// Known reports whether t is a block type the form renderer understands.
func (t BlockType) Known() bool {
	return knownBlocks[t]
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid form config")

// Block is one page of the public form. Props carries display properties
// (titles, placeholders, colors) plus the few behavioural keys read here:
// "threshold" and "redirect" on rating blocks, "required" on consent blocks
// and "require_email" on customer details blocks.
type Block struct {
	Type    BlockType              `json:"type" yaml:"type"`
	Enabled bool                   `json:"enabled" yaml:"enabled"`
	Props   map[string]interface{} `json:"props,omitempty" yaml:"props,omitempty"`
}

// Config is the versioned JSON document stored in forms.config.
type Config struct {
	Version int     `json:"version" yaml:"version"`
	Blocks  []Block `json:"blocks" yaml:"blocks"`
}

// Validate checks the structural rules the navigator relies on.
func (c Config) Validate() error {
	enabled := 0
	ratings := 0
	for i, b := range c.Blocks {
		if !b.Type.Known() {
			return fmt.Errorf("%w: block %d has unknown type %q", ErrInvalidConfig, i, b.Type)
		}
		if !b.Enabled {
			continue
		}
		enabled++
		if b.Type != BlockRating {
			continue
		}
		ratings++
		if t := b.Threshold(); t < 1 || t > 5 {
			return fmt.Errorf("%w: rating threshold %d out of range 1..5", ErrInvalidConfig, t)
		}
		if r := b.Redirect(); !r.Known() || r == BlockRating {
			return fmt.Errorf("%w: rating redirect %q is not a valid block type", ErrInvalidConfig, r)
		}
	}
	if enabled == 0 {
		return fmt.Errorf("%w: no enabled blocks", ErrInvalidConfig)
	}
	if ratings > 1 {
		return fmt.Errorf("%w: at most one rating block may be enabled", ErrInvalidConfig)
	}
	return nil
}

// Threshold returns the rating block's redirect threshold.
func (b Block) Threshold() int {
	return b.IntProp("threshold", DefaultThreshold)
}

// Redirect returns the block type a low rating jumps to.
func (b Block) Redirect() BlockType {
	return BlockType(b.StringProp("redirect", string(BlockNegativeFeedback)))
}

// IntProp reads a numeric prop. JSON documents decode numbers as float64 and
// YAML as int, and the builder UI sometimes stores numeric strings.
func (b Block) IntProp(key string, def int) int {
	v, ok := b.Props[key]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return def
}

func (b Block) StringProp(key, def string) string {
	if s, ok := b.Props[key].(string); ok && s != "" {
		return s
	}
	return def
}

func (b Block) BoolProp(key string, def bool) bool {
	switch v := b.Props[key].(type) {
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
