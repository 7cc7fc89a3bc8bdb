// Package kit holds the building blocks shared by the feature modules: the
// client binding each module is constructed with, and tool constructors for
// the common parameter shapes (single date, date range, optional range,
// identifier, paging). Every constructor routes its handler through
// package result, so no remote fault escapes a tool.
package kit

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/germanamz/garmin-mcp/pkg/tools/result"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolschema"
)

// Binding is a module's client slot. It is set once at construction and
// never changes; an unset binding makes every tool report NotConfigured.
type Binding[C any] struct {
	client C
	ok     bool
}

// Bind binds client. A nil interface or nil pointer leaves the binding unset.
func Bind[C any](client C) Binding[C] {
	return Binding[C]{client: client, ok: !isNil(client)}
}

// Client returns the bound client and whether one is bound.
func (b Binding[C]) Client() (C, bool) { return b.client, b.ok }

// Configured reports whether a client is bound.
func (b Binding[C]) Configured() bool { return b.ok }

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// Option adjusts a tool built by Custom.
type Option func(*toolbox.Tool)

// ReadOnly marks a tool as not mutating remote state.
func ReadOnly() Option { return func(t *toolbox.Tool) { t.ReadOnly = true } }

// Destructive marks a tool as deleting remote data.
func Destructive() Option { return func(t *toolbox.Tool) { t.Destructive = true } }

// Custom builds a tool whose arguments decode into In. fn runs only when a
// client is bound and the input decodes.
func Custom[C, In any](b Binding[C], name, description string, params []toolschema.Param, fn func(ctx context.Context, c C, in In) result.Result, opts ...Option) toolbox.Tool {
	t := toolbox.Tool{
		Name:        name,
		Description: description,
		InputSchema: toolschema.MustJSON(params...),
		Handler: result.Handler(func(ctx context.Context, input json.RawMessage) result.Result {
			c, ok := b.Client()
			if !ok {
				return result.NotConfigured(name)
			}

			var in In
			if len(input) > 0 {
				if err := json.Unmarshal(input, &in); err != nil {
					return result.Failure(fmt.Sprintf("Error: invalid arguments for %s: %v", name, err))
				}
			}

			return fn(ctx, c, in)
		}),
	}

	for _, opt := range opts {
		opt(&t)
	}

	return t
}

// DateInput is the argument of single-date tools.
type DateInput struct {
	Date string `json:"date"`
}

// RangeInput is the argument of date-range tools.
type RangeInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// PageInput is the argument of paged list tools.
type PageInput struct {
	Start int  `json:"start"`
	Limit *int `json:"limit"`
}

// DateTool builds a read tool taking one date.
func DateTool[C any](b Binding[C], name, description, subject string, fetch func(C, context.Context, string) (json.RawMessage, error)) toolbox.Tool {
	params := []toolschema.Param{toolschema.Date("date", "Date")}
	return Custom(b, name, description, params, func(ctx context.Context, c C, in DateInput) result.Result {
		return result.Wrap(subject, result.For(in.Date), func() (json.RawMessage, error) {
			return fetch(c, ctx, in.Date)
		})
	}, ReadOnly())
}

// RangeTool builds a read tool taking a start and end date.
func RangeTool[C any](b Binding[C], name, description, subject string, fetch func(C, context.Context, string, string) (json.RawMessage, error)) toolbox.Tool {
	params := []toolschema.Param{
		toolschema.Date("start_date", "Start date"),
		toolschema.Date("end_date", "End date"),
	}
	return Custom(b, name, description, params, func(ctx context.Context, c C, in RangeInput) result.Result {
		return result.Wrap(subject, result.Between(in.StartDate, in.EndDate), func() (json.RawMessage, error) {
			return fetch(c, ctx, in.StartDate, in.EndDate)
		})
	}, ReadOnly())
}

// OptionalRangeTool builds a read tool taking a start date and an optional end
// date. Without an end date it calls single; with one it calls ranged.
func OptionalRangeTool[C any](
	b Binding[C],
	name, description, subject string,
	single func(C, context.Context, string) (json.RawMessage, error),
	ranged func(C, context.Context, string, string) (json.RawMessage, error),
) toolbox.Tool {
	params := []toolschema.Param{
		toolschema.Date("start_date", "Date, or start date when end_date is given"),
		toolschema.OptionalDate("end_date", "Optional end date for a date range"),
	}
	return Custom(b, name, description, params, func(ctx context.Context, c C, in RangeInput) result.Result {
		if in.EndDate != "" {
			return result.Wrap(subject, result.Between(in.StartDate, in.EndDate), func() (json.RawMessage, error) {
				return ranged(c, ctx, in.StartDate, in.EndDate)
			})
		}
		return result.Wrap(subject, result.For(in.StartDate), func() (json.RawMessage, error) {
			return single(c, ctx, in.StartDate)
		})
	}, ReadOnly())
}

// NoArgTool builds a read tool without parameters.
func NoArgTool[C any](b Binding[C], name, description, subject string, fetch func(C, context.Context) (json.RawMessage, error)) toolbox.Tool {
	return Custom(b, name, description, nil, func(ctx context.Context, c C, _ struct{}) result.Result {
		return result.Wrap(subject, "", func() (json.RawMessage, error) {
			return fetch(c, ctx)
		})
	}, ReadOnly())
}

// IDTool builds a read tool taking one integer identifier named param. label
// names the entity in empty notices ("No splits found for activity 12").
func IDTool[C any](b Binding[C], name, description, subject, param, label string, fetch func(C, context.Context, int64) (json.RawMessage, error)) toolbox.Tool {
	params := []toolschema.Param{toolschema.Int(param, "ID of the "+label)}
	return Custom(b, name, description, params, func(ctx context.Context, c C, in map[string]json.Number) result.Result {
		id, err := in[param].Int64()
		if err != nil {
			return result.Failure(fmt.Sprintf("Error: invalid %s: %v", param, err))
		}
		return result.Wrap(subject, result.For(label+" "+strconv.FormatInt(id, 10)), func() (json.RawMessage, error) {
			return fetch(c, ctx, id)
		})
	}, ReadOnly())
}

// PageTool builds a read tool taking start and limit paging parameters.
func PageTool[C any](b Binding[C], name, description, subject string, defaultLimit int, fetch func(C, context.Context, int, int) (json.RawMessage, error)) toolbox.Tool {
	params := []toolschema.Param{
		toolschema.Int("start", "Index of the first item").Optional(0),
		toolschema.Int("limit", "Maximum number of items").Optional(defaultLimit),
	}
	return Custom(b, name, description, params, func(ctx context.Context, c C, in PageInput) result.Result {
		limit := defaultLimit
		if in.Limit != nil {
			limit = *in.Limit
		}
		scope := fmt.Sprintf("(start %d, limit %d)", in.Start, limit)
		return result.Wrap(subject, scope, func() (json.RawMessage, error) {
			return fetch(c, ctx, in.Start, limit)
		})
	}, ReadOnly())
}
