package vmf

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/specialistvlad/vmfgo/keyvalues"
)

// ActionSeparator is the separator the editor writes between action fields.
// Older files use a comma instead.
const ActionSeparator = "\x1b"

// Action is one parsed entity I/O connection value.
type Action struct {
	Target    string
	Input     string
	Parameter string
	Delay     float64
	Refires   int // -1 for unlimited.
}

// ParseAction parses "target,input,parameter,delay,refires", separated by
// ESC when the value contains one and by commas otherwise. With commas, any
// extra separators are taken to belong to the parameter.
func ParseAction(raw string) (Action, error) {
	sep := ","
	if strings.Contains(raw, ActionSeparator) {
		sep = ActionSeparator
	}
	parts := strings.Split(raw, sep)
	if len(parts) < 5 || sep == ActionSeparator && len(parts) != 5 {
		return Action{}, fmt.Errorf("%w: action %q has %d fields", ErrMalformedValue, raw, len(parts))
	}

	n := len(parts)
	delay, err := strconv.ParseFloat(strings.TrimSpace(parts[n-2]), 64)
	if err != nil {
		return Action{}, fmt.Errorf("%w: action %q delay: %w", ErrMalformedValue, raw, err)
	}
	refires, err := strconv.Atoi(strings.TrimSpace(parts[n-1]))
	if err != nil {
		return Action{}, fmt.Errorf("%w: action %q refires: %w", ErrMalformedValue, raw, err)
	}
	return Action{
		Target:    parts[0],
		Input:     parts[1],
		Parameter: strings.Join(parts[2:n-2], sep),
		Delay:     delay,
		Refires:   refires,
	}, nil
}

// String formats the action with ActionSeparator.
func (a Action) String() string {
	return a.Format(ActionSeparator)
}

// Format joins the action fields with sep.
func (a Action) Format(sep string) string {
	return strings.Join([]string{a.Target, a.Input, a.Parameter, formatFloat(a.Delay), strconv.Itoa(a.Refires)}, sep)
}

// Connections maps entity outputs to action strings. Outputs repeat freely
// and keep their order.
type Connections struct {
	Outputs keyvalues.Attributes

	Passthrough Passthrough
}

// Add appends an action for output.
func (c *Connections) Add(output string, a Action) {
	c.Outputs.Add(output, a.String())
}

// Len is the number of output entries.
func (c *Connections) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Outputs)
}

// Actions yields each output name with its parsed action. Entries that do
// not parse are yielded with their error.
func (c *Connections) Actions() iter.Seq2[string, ActionResult] {
	return func(yield func(string, ActionResult) bool) {
		if c == nil {
			return
		}
		for _, o := range c.Outputs {
			a, err := ParseAction(o.Value)
			if !yield(o.Key, ActionResult{Action: a, Raw: o.Value, Err: err}) {
				return
			}
		}
	}
}

// ActionResult pairs a parsed action with its source text.
type ActionResult struct {
	Action
	Raw string
	Err error
}

func decodeConnections(b *keyvalues.Block) *Connections {
	c := &Connections{Outputs: b.Attributes.Clone()}
	for _, child := range b.Children {
		c.Passthrough.skipBlock(0, child)
	}
	return c
}

func (c *Connections) block() *keyvalues.Block {
	if c == nil {
		return nil
	}
	return build("connections", loose(c.Outputs), nil, &c.Passthrough)
}

func (c *Connections) clone() *Connections {
	if c == nil {
		return nil
	}
	return &Connections{Outputs: c.Outputs.Clone(), Passthrough: c.Passthrough.clone()}
}
