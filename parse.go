package formskema

import (
	"context"
	"errors"
	"io"

	eng "github.com/reoring/formskema/internal/engine"
)

// Decode reads one value from src into an untyped tree (map[string]any,
// []any, string, json.Number or float64, bool, nil), applying the limits in
// opt. Failures are returned as Issues.
func Decode(src Source, opts ...ParseOpt) (any, error) {
	opt := lastOpt(opts)
	eo := eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
	}
	if opt.OnWarn != nil {
		eo.IssueSink = func(si eng.SimpleIssue) {
			opt.OnWarn(Issue{Path: si.Path, Code: si.Code, Message: si.Message})
		}
	}
	toks := src.tokens()
	if bl, ok := toks.(eng.ByteLimiter); ok && opt.MaxBytes > 0 {
		bl.LimitBytes(opt.MaxBytes)
	}
	enforced := eng.WrapWithEnforcement(toks, eo)
	conv := eng.AsJSONNumber
	if src.NumberMode() == NumberFloat64 {
		conv = eng.AsFloat64
	}
	v, err := eng.DecodeAny(enforced, conv)
	if err != nil {
		return nil, decodeIssues(err)
	}
	if _, err := enforced.NextToken(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, decodeIssues(err)
	}
	return v, nil
}

// ParseFrom decodes src and parses the value with s.
func ParseFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, Issues{{Code: CodeParseError, Message: "nil schema"}}
	}
	opt := lastOpt(opts)
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	v, err := Decode(src, opt)
	if err != nil {
		return zero, err
	}
	return s.Parse(ctx, v)
}

// ValidateFrom is ParseFrom returning a Result. Decode failures land in the
// Error Tree like any other issue.
func ValidateFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) Result[T] {
	v, err := ParseFrom(ctx, s, src, opts...)
	if err != nil {
		return Err[T](ToIssues(err))
	}
	return Ok(v)
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func decodeIssues(err error) Issues {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{{Path: ie.Path, Code: ie.Code, Message: ie.Message, Cause: err}}
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return Issues{{Code: CodeParseError, Message: err.Error(), Cause: err}}
}
