// Package result normalizes the outcome of a tool handler into one of a small
// set of variants: structured data, an empty notice, or a failure notice.
// Handlers never let a remote fault escape as a protocol error; everything
// is rendered into text the caller can read.
package result

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
)

// Kind identifies a Result variant.
type Kind int

const (
	KindData Kind = iota
	KindEmpty
	KindFailure
	KindNotConfigured
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindEmpty:
		return "empty"
	case KindFailure:
		return "failure"
	case KindNotConfigured:
		return "not_configured"
	default:
		return "unknown"
	}
}

// Result is the normalized outcome of one tool invocation.
type Result struct {
	kind Kind
	data json.RawMessage
	text string
}

// Data wraps a structured payload.
func Data(raw json.RawMessage) Result {
	return Result{kind: KindData, data: raw}
}

// Text is a successful plain-text outcome, used by mutating tools.
func Text(s string) Result {
	return Result{kind: KindData, text: s}
}

// Empty reports that the remote call succeeded but returned nothing.
func Empty(reason string) Result {
	return Result{kind: KindEmpty, text: reason}
}

// Failure reports a remote fault as a readable message.
func Failure(message string) Result {
	return Result{kind: KindFailure, text: message}
}

// NotConfigured reports a tool invoked before a client was bound.
func NotConfigured(tool string) Result {
	return Result{kind: KindNotConfigured, text: fmt.Sprintf("Error: %s is not configured: no Garmin Connect client is bound", tool)}
}

// Kind returns the variant.
func (r Result) Kind() Kind { return r.kind }

// IsError reports whether the result should be flagged as an error to the caller.
func (r Result) IsError() bool {
	return r.kind == KindFailure || r.kind == KindNotConfigured
}

// Payload returns the structured payload of a Data result, or nil.
func (r Result) Payload() json.RawMessage { return r.data }

// String renders the result as caller-facing text. Data payloads render as
// compact JSON.
func (r Result) String() string {
	if r.kind != KindData || r.data == nil {
		return r.text
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, r.data); err != nil {
		return string(r.data)
	}
	return buf.String()
}

// Error carries a failure result through a toolbox handler's error return so
// the transport flags it, without making it a protocol fault.
type Error struct {
	Result Result
}

func (e *Error) Error() string { return e.Result.String() }

// IsEmpty applies the empty-result rule: no body, null, an empty object,
// array, or string, zero, and false all count as "no data".
func IsEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}

	res := gjson.ParseBytes(trimmed)
	switch res.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.String:
		return res.Str == ""
	case gjson.Number:
		return res.Num == 0
	case gjson.JSON:
		if res.IsArray() {
			return len(res.Array()) == 0
		}
		empty := true
		res.ForEach(func(_, _ gjson.Result) bool {
			empty = false
			return false
		})
		return empty
	default:
		return false
	}
}

// For scopes a notice to a single date or identifier.
func For(value string) string { return "for " + value }

// Between scopes a notice to a date range.
func Between(start, end string) string {
	return fmt.Sprintf("between %s and %s", start, end)
}

// Fetch performs one remote call.
type Fetch func() (json.RawMessage, error)

// Wrap runs fetch and classifies its outcome for a read tool. Faults become
// "Error retrieving <subject>: <message>"; empty payloads become
// "No <subject> found <scope>".
func Wrap(subject, scope string, fetch Fetch) (r Result) {
	defer func() {
		if p := recover(); p != nil {
			r = Failure(fmt.Sprintf("Error retrieving %s: panic: %v", subject, p))
		}
	}()

	raw, err := fetch()
	if err != nil {
		return Failure(fmt.Sprintf("Error retrieving %s: %s", subject, err.Error()))
	}

	if IsEmpty(raw) {
		return Empty(strings.TrimSpace("No " + subject + " found " + scope))
	}

	return Data(raw)
}

// WrapAction runs a mutating call. Faults become
// "Error <verb> <subject>: <message>"; an empty response is reported with
// done instead of an empty notice.
func WrapAction(verb, subject, done string, fetch Fetch) (r Result) {
	defer func() {
		if p := recover(); p != nil {
			r = Failure(fmt.Sprintf("Error %s %s: panic: %v", verb, subject, p))
		}
	}()

	raw, err := fetch()
	if err != nil {
		return Failure(fmt.Sprintf("Error %s %s: %s", verb, subject, err.Error()))
	}

	if IsEmpty(raw) {
		return Text(done)
	}

	return Data(raw)
}

// HandlerFunc produces a Result for one invocation.
type HandlerFunc func(ctx context.Context, input json.RawMessage) Result

// Handler adapts fn to a toolbox.Handler. Data and empty results are returned
// as text; failures are returned as *Error so the transport marks them.
func Handler(fn HandlerFunc) toolbox.Handler {
	return func(ctx context.Context, input json.RawMessage) (string, error) {
		r := fn(ctx, input)
		if o, ok := ctx.Value(outcomeKey{}).(*outcome); ok {
			o.kind, o.set = r.kind, true
		}
		if r.IsError() {
			return "", &Error{Result: r}
		}
		return r.String(), nil
	}
}

type outcomeKey struct{}

type outcome struct {
	kind Kind
	set  bool
}

// Observe returns a context that captures the Kind produced by a Handler run
// with it, and a function reporting that Kind. Handlers not built with this
// package are classified from their error alone.
func Observe(ctx context.Context) (context.Context, func(err error) Kind) {
	o := &outcome{}
	return context.WithValue(ctx, outcomeKey{}, o), func(err error) Kind {
		if o.set {
			return o.kind
		}
		if err != nil {
			return KindFailure
		}
		return KindData
	}
}
