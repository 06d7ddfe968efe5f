package generation

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// TemplateSpec describes a prompt template before it is compiled.
//
// Scaffold and Task use text/template syntax; every placeholder is written as
// {{.name}} where name is one of Placeholders. The scaffold must reference
// every declared placeholder; the task may reference any subset of them.
type TemplateSpec struct {
	Name         string
	Model        string
	Temperature  float32
	Scaffold     string
	Task         string
	Placeholders []string
}

// Template is a compiled, immutable prompt template. It is safe for concurrent use.
type Template struct {
	name         string
	model        string
	temperature  float32
	placeholders []string
	declared     map[string]struct{}
	scaffoldText string
	scaffold     *template.Template
	task         *template.Template
}

// Prompt is a fully bound request ready to be sent to a TextGenerator.
type Prompt struct {
	// Model is the identifier of the model that should serve the request
	Model string

	// SystemInstruction is the bound scaffold
	SystemInstruction string

	// Task is the short "user" side of the request
	Task string

	// Temperature is the sampling temperature for the request
	Temperature float32
}

// NewTemplate compiles spec and checks that the scaffold references exactly
// the declared placeholders.
func NewTemplate(spec TemplateSpec) (*Template, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidTemplate)
	}
	if spec.Model == "" {
		return nil, fmt.Errorf("%w: %s: model cannot be empty", ErrInvalidTemplate, spec.Name)
	}
	if len(spec.Placeholders) == 0 {
		return nil, fmt.Errorf("%w: %s: no placeholders declared", ErrInvalidTemplate, spec.Name)
	}

	declared := make(map[string]struct{}, len(spec.Placeholders))
	for _, name := range spec.Placeholders {
		if name == "" {
			return nil, fmt.Errorf("%w: %s: empty placeholder name", ErrInvalidTemplate, spec.Name)
		}
		if _, dup := declared[name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate placeholder %q", ErrInvalidTemplate, spec.Name, name)
		}
		declared[name] = struct{}{}
	}

	scaffold, err := template.New(spec.Name).Option("missingkey=error").Parse(spec.Scaffold)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to parse scaffold: %v", ErrInvalidTemplate, spec.Name, err)
	}
	task, err := template.New(spec.Name + "_task").Option("missingkey=error").Parse(spec.Task)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to parse task: %v", ErrInvalidTemplate, spec.Name, err)
	}

	t := &Template{
		name:         spec.Name,
		model:        spec.Model,
		temperature:  spec.Temperature,
		placeholders: append([]string(nil), spec.Placeholders...),
		declared:     declared,
		scaffoldText: spec.Scaffold,
		scaffold:     scaffold,
		task:         task,
	}

	if err := t.probe(); err != nil {
		return nil, err
	}

	return t, nil
}

// probe executes both templates with marker values. Execution fails when a
// template references an undeclared name; a missing marker means the scaffold
// never uses a declared placeholder.
func (t *Template) probe() error {
	markers := make(map[string]string, len(t.placeholders))
	for _, name := range t.placeholders {
		markers[name] = "\x00" + name + "\x00"
	}

	system, err := execute(t.scaffold, markers)
	if err != nil {
		return fmt.Errorf("%w: %s: scaffold references an undeclared placeholder: %v", ErrInvalidTemplate, t.name, err)
	}
	if _, err := execute(t.task, markers); err != nil {
		return fmt.Errorf("%w: %s: task references an undeclared placeholder: %v", ErrInvalidTemplate, t.name, err)
	}

	for _, name := range t.placeholders {
		if !strings.Contains(system, markers[name]) {
			return fmt.Errorf("%w: %s: placeholder %q is declared but never used", ErrInvalidTemplate, t.name, name)
		}
	}
	return nil
}

// Name returns the flow name of the template.
func (t *Template) Name() string { return t.name }

// Model returns the model identifier requests are sent to.
func (t *Template) Model() string { return t.model }

// Temperature returns the fixed sampling temperature of the flow.
func (t *Template) Temperature() float32 { return t.temperature }

// Scaffold returns the unbound scaffold text.
func (t *Template) Scaffold() string { return t.scaffoldText }

// Bind substitutes values into the scaffold and the task. Values are inserted
// verbatim. Every declared placeholder must be present in values (an empty
// string counts as bound) and values must not name anything else.
func (t *Template) Bind(values map[string]string) (Prompt, error) {
	var extra []string
	for name := range values {
		if _, ok := t.declared[name]; !ok {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return Prompt{}, fmt.Errorf("%w: %s: %s", ErrUnexpectedArgument, t.name, strings.Join(extra, ", "))
	}

	for _, name := range t.placeholders {
		if _, ok := values[name]; !ok {
			return Prompt{}, fmt.Errorf("%w: %s: %s", ErrUnboundPlaceholder, t.name, name)
		}
	}

	system, err := execute(t.scaffold, values)
	if err != nil {
		return Prompt{}, fmt.Errorf("%w: %s: %v", ErrUnboundPlaceholder, t.name, err)
	}
	task, err := execute(t.task, values)
	if err != nil {
		return Prompt{}, fmt.Errorf("%w: %s: %v", ErrUnboundPlaceholder, t.name, err)
	}

	return Prompt{
		Model:             t.model,
		SystemInstruction: system,
		Task:              task,
		Temperature:       t.temperature,
	}, nil
}

func execute(tmpl *template.Template, values map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
