// Package generate runs the whole pipeline for one UI description: compile
// the CUE source, build the widget graph, emit statements and wrap them in
// a compilation unit. The CLI, the HTTP API and the WebSocket protocol all
// go through Source.
package generate

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/matthewbaird/framegen/internal/gen"
	"github.com/matthewbaird/framegen/internal/store"
	"github.com/matthewbaird/framegen/internal/uidef"
	"github.com/matthewbaird/framegen/internal/unit"
)

// Stage names the pipeline step that failed.
type Stage string

const (
	StageInput    Stage = "input"
	StageCompile  Stage = "compile"
	StageBuild    Stage = "build"
	StageGenerate Stage = "generate"
)

// Error is a pipeline failure.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string { return string(e.Stage) + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Code returns a stable machine-readable code for err, used in HTTP and
// WebSocket error payloads.
func Code(err error) string {
	var ge *gen.Error
	if errors.As(err, &ge) {
		return strings.ReplaceAll(ge.Kind.String(), " ", "_")
	}
	var pe *Error
	if errors.As(err, &pe) {
		return string(pe.Stage) + "_error"
	}
	return "internal_error"
}

// identRe matches names usable in a C identifier, the same pattern the
// schema applies to description names.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// checkNames rejects a function name that would not form a C identifier
// and a source name that would break out of the banner comment.
func checkNames(source, funcName string) error {
	if funcName != "" && !identRe.MatchString(funcName) {
		return &Error{Stage: StageInput, Err: fmt.Errorf("function name %q is not an identifier", funcName)}
	}
	if strings.ContainsFunc(source, unicode.IsControl) {
		return &Error{Stage: StageInput, Err: fmt.Errorf("source name %q contains control characters", source)}
	}
	return nil
}

// Output is a generated unit.
type Output struct {
	RunID          uuid.UUID `json:"run_id"`
	Name           string    `json:"name"`
	RootClass      string    `json:"root_class"`
	Header         string    `json:"header"`
	Implementation string    `json:"implementation"`
	// Pending lists deferred assignments whose value was never generated.
	Pending []string `json:"pending,omitempty"`
}

// Source compiles and generates one description. name is the file name
// shown in errors and in the generated banner; funcName, when set,
// overrides the description's own name.
func Source(name string, src []byte, funcName string) (*Output, error) {
	if err := checkNames(name, funcName); err != nil {
		return nil, err
	}
	doc, err := uidef.Compile(name, src)
	if err != nil {
		return nil, &Error{Stage: StageCompile, Err: err}
	}
	return Document(doc, name, funcName)
}

// Document generates an already decoded description.
func Document(doc *uidef.Document, source, funcName string) (*Output, error) {
	if err := checkNames(source, funcName); err != nil {
		return nil, err
	}
	c := gen.NewContext()
	res, err := doc.Build(c)
	if err != nil {
		return nil, &Error{Stage: StageBuild, Err: err}
	}
	body, pending, err := res.Generate(c)
	if err != nil {
		return nil, &Error{Stage: StageGenerate, Err: err}
	}
	if funcName == "" {
		funcName = res.Name
	}
	u := unit.New(funcName, source, res.RootClass(), res.RootVar(), body)
	header, err := u.Header()
	if err != nil {
		return nil, &Error{Stage: StageGenerate, Err: err}
	}
	impl, err := u.Implementation()
	if err != nil {
		return nil, &Error{Stage: StageGenerate, Err: err}
	}
	return &Output{
		RunID:          u.RunID,
		Name:           funcName,
		RootClass:      u.RootClass,
		Header:         header,
		Implementation: impl,
		Pending:        pending,
	}, nil
}

// Record generates src and saves the run in s, successful or not. The
// returned error is the generation error; a failure to save is returned
// only when generation itself succeeded.
func Record(ctx context.Context, s store.Store, name string, src []byte, funcName string) (*Output, *store.Run, error) {
	out, genErr := Source(name, src, funcName)
	run, err := SaveRun(ctx, s, name, string(src), out, genErr)
	if genErr != nil {
		return nil, run, genErr
	}
	return out, run, err
}

// SaveRun stores the outcome of one generation: out on success, genErr on
// failure.
func SaveRun(ctx context.Context, s store.Store, name, src string, out *Output, genErr error) (*store.Run, error) {
	run := &store.Run{Name: name, Source: src}
	if genErr != nil {
		run.Error = genErr.Error()
	} else {
		run.ID = out.RunID
		run.Name = out.Name
		run.Header = out.Header
		run.Output = out.Implementation
		run.Pending = out.Pending
	}
	if err := s.Save(ctx, run); err != nil {
		return run, fmt.Errorf("recording run: %w", err)
	}
	return run, nil
}
