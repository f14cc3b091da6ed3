package formflow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIncomplete is wrapped by every missing-answer error so callers can map
	// them to a single client error.
	ErrIncomplete = errors.New("incomplete submission")

	ErrRatingRequired   = fmt.Errorf("%w: a rating between 1 and 5 is required", ErrIncomplete)
	ErrMessageRequired  = fmt.Errorf("%w: a message or video is required", ErrIncomplete)
	ErrFeedbackRequired = fmt.Errorf("%w: feedback is required", ErrIncomplete)
	ErrConsentRequired  = fmt.Errorf("%w: consent is required", ErrIncomplete)
	ErrNameRequired     = fmt.Errorf("%w: name is required", ErrIncomplete)
	ErrEmailRequired    = fmt.Errorf("%w: email is required", ErrIncomplete)
)

// Answers accumulates what the customer entered while walking the form.
type Answers struct {
	Rating     int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Message    string `json:"message,omitempty" validate:"max=5000"`
	VideoPath  string `json:"video_path,omitempty"`
	Feedback   string `json:"feedback,omitempty" validate:"max=5000"`
	Consent    bool   `json:"consent"`
	Name       string `json:"name,omitempty" validate:"max=200"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Title      string `json:"title,omitempty" validate:"max=200"`
	Company    string `json:"company,omitempty" validate:"max=200"`
	AvatarPath string `json:"avatar_path,omitempty"`
}

// Navigator walks the enabled blocks of a form. It holds a cursor into the
// enabled list and a history of earlier positions so Previous undoes a
// rating redirect instead of stepping into the skipped branch.
type Navigator struct {
	cfg        Config
	enabled    []int
	cursor     int
	history    []int
	answers    Answers
	redirected bool
	redirectAt int
	done       bool
	onComplete func(Answers)
}

// NewNavigator validates cfg and positions the cursor on the first enabled
// block. onComplete may be nil; it fires once when the walk finishes.
func NewNavigator(cfg Config, onComplete func(Answers)) (*Navigator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := &Navigator{cfg: cfg, onComplete: onComplete}
	for i, b := range cfg.Blocks {
		if b.Enabled {
			n.enabled = append(n.enabled, i)
		}
	}
	return n, nil
}

// Current returns the block under the cursor.
func (n *Navigator) Current() Block {
	return n.block(n.cursor)
}

func (n *Navigator) block(pos int) Block {
	return n.cfg.Blocks[n.enabled[pos]]
}

// Done reports whether the completion callback has fired.
func (n *Navigator) Done() bool { return n.done }

// Redirected reports whether a low rating sent the walk down the feedback branch.
func (n *Navigator) Redirected() bool { return n.redirected }

// Answers returns the answers recorded by the last Next call.
func (n *Navigator) Answers() Answers { return n.answers }

// IsLast reports whether the current block has no successor on any branch.
func (n *Navigator) IsLast() bool {
	return n.isTerminal(n.cursor)
}

// Path lists the visited block types in order, ending with the current one.
func (n *Navigator) Path() []BlockType {
	path := make([]BlockType, 0, len(n.history)+1)
	for _, pos := range n.history {
		path = append(path, n.block(pos).Type)
	}
	return append(path, n.Current().Type)
}

// Next records answers and advances the cursor. It returns true once the
// cursor has reached the final block, at which point the completion callback
// has fired. Calling Next after completion is a no-op.
func (n *Navigator) Next(answers Answers) (bool, error) {
	if n.done {
		return true, nil
	}
	n.answers = answers

	pos, redirect, err := n.nextPosition(answers)
	if err != nil {
		return false, err
	}
	if pos < 0 {
		n.finish()
		return true, nil
	}

	n.history = append(n.history, n.cursor)
	n.cursor = pos
	if redirect {
		n.redirected = true
		n.redirectAt = len(n.history)
	}
	if n.isTerminal(n.cursor) {
		n.finish()
		return true, nil
	}
	return false, nil
}

// Previous moves back to the block visited before the current one.
func (n *Navigator) Previous() bool {
	if n.done || len(n.history) == 0 {
		return false
	}
	last := len(n.history) - 1
	n.cursor = n.history[last]
	n.history = n.history[:last]
	if n.redirected && len(n.history) < n.redirectAt {
		n.redirected = false
	}
	return true
}

func (n *Navigator) finish() {
	n.done = true
	if n.onComplete != nil {
		n.onComplete(n.answers)
	}
}

// nextPosition returns the enabled position the cursor moves to, or -1 when
// the current block ends the walk.
func (n *Navigator) nextPosition(a Answers) (int, bool, error) {
	cur := n.Current()
	switch cur.Type {
	case BlockRating:
		if a.Rating < 1 || a.Rating > 5 {
			return -1, false, ErrRatingRequired
		}
		if a.Rating <= cur.Threshold() {
			if pos := n.find(cur.Redirect(), n.cursor+1); pos >= 0 {
				return pos, true, nil
			}
		}
	case BlockNegativeFeedback:
		return n.find(BlockThankYou, n.cursor+1), false, nil
	}
	return n.linear(n.cursor + 1), false, nil
}

// linear returns the first position at or after from that is reachable
// without a redirect. Feedback blocks are only entered through the rating branch.
func (n *Navigator) linear(from int) int {
	for pos := from; pos < len(n.enabled); pos++ {
		if n.block(pos).Type != BlockNegativeFeedback {
			return pos
		}
	}
	return -1
}

func (n *Navigator) find(t BlockType, from int) int {
	for pos := from; pos < len(n.enabled); pos++ {
		if n.block(pos).Type == t {
			return pos
		}
	}
	return -1
}

func (n *Navigator) isTerminal(pos int) bool {
	b := n.block(pos)
	switch b.Type {
	case BlockRating:
		return pos == len(n.enabled)-1
	case BlockNegativeFeedback:
		return n.find(BlockThankYou, pos+1) < 0
	}
	return n.linear(pos+1) < 0
}

// Result is the outcome of replaying a submission through the form.
type Result struct {
	Path     []BlockType
	Negative bool
	Answers  Answers
}

// Replay walks cfg with a complete set of answers, as the server does when a
// submission arrives, and checks every block on the resulting path.
func Replay(cfg Config, answers Answers) (*Result, error) {
	answers = normalize(answers)

	nav, err := NewNavigator(cfg, nil)
	if err != nil {
		return nil, err
	}
	for steps := 0; steps <= len(cfg.Blocks); steps++ {
		done, err := nav.Next(answers)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	if !nav.Done() {
		return nil, fmt.Errorf("%w: walk did not terminate", ErrInvalidConfig)
	}

	visited := make([]int, 0, len(nav.history)+1)
	visited = append(visited, nav.history...)
	visited = append(visited, nav.cursor)
	for _, pos := range visited {
		if err := checkBlock(nav.block(pos), answers); err != nil {
			return nil, err
		}
	}
	return &Result{Path: nav.Path(), Negative: nav.Redirected(), Answers: answers}, nil
}

func checkBlock(b Block, a Answers) error {
	switch b.Type {
	case BlockRating:
		if a.Rating < 1 || a.Rating > 5 {
			return ErrRatingRequired
		}
	case BlockQuestion:
		if a.Message == "" && a.VideoPath == "" {
			return ErrMessageRequired
		}
	case BlockNegativeFeedback:
		if a.Feedback == "" && a.Message == "" {
			return ErrFeedbackRequired
		}
	case BlockConsent:
		if b.BoolProp("required", true) && !a.Consent {
			return ErrConsentRequired
		}
	case BlockCustomerDetails:
		if a.Name == "" {
			return ErrNameRequired
		}
		if b.BoolProp("require_email", false) && a.Email == "" {
			return ErrEmailRequired
		}
	}
	return nil
}

func normalize(a Answers) Answers {
	a.Message = strings.TrimSpace(a.Message)
	a.Feedback = strings.TrimSpace(a.Feedback)
	a.Name = strings.TrimSpace(a.Name)
	a.Email = strings.TrimSpace(strings.ToLower(a.Email))
	a.Title = strings.TrimSpace(a.Title)
	a.Company = strings.TrimSpace(a.Company)
	a.VideoPath = strings.TrimSpace(a.VideoPath)
	return a
}
