package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/sellwise/internal/api"
	"github.com/phrazzld/sellwise/internal/api/shared"
	"github.com/phrazzld/sellwise/internal/generation"
	"github.com/urfave/cli/v2"
)

// exitError carries the process exit status out of a command. It does not
// implement cli.ExitCoder, so the cli package never calls os.Exit itself.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// ExitStatus reports the code the process should exit with.
func (e *exitError) ExitStatus() int { return e.code }

// serviceFactory builds the generation service on first use, so --help and
// flag errors never need configuration.
type serviceFactory func(ctx context.Context) (api.CopyGenerator, error)

// newApp builds the command tree. Generated markdown is written to out; cli
// errors go to errOut.
func newApp(newService serviceFactory, out, errOut io.Writer) *cli.App {
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "print the full result as JSON instead of markdown",
	}

	return &cli.App{
		Name:      "sellwise",
		Usage:     "generate marketing copy with Gemini",
		Writer:    out,
		ErrWriter: errOut,
		Commands: []*cli.Command{
			{
				Name:  "product",
				Usage: "product page copy: headline, body and SEO bullet points",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "product name", Required: true},
					&cli.StringFlag{Name: "description", Usage: "product description and features", Required: true},
					&cli.StringFlag{Name: "audience", Usage: "target audience", Required: true},
					&cli.StringFlag{Name: "tone", Usage: choiceUsage(generation.ProductTones), Value: generation.ProductTones[0]},
					jsonFlag,
				},
				Action: func(c *cli.Context) error {
					req := generation.ProductCopyRequest{
						ProductName: c.String("name"),
						Description: c.String("description"),
						Audience:    c.String("audience"),
						Tone:        c.String("tone"),
					}
					return runFlow(c, newService, out, req, func(g api.CopyGenerator) func(context.Context, generation.ProductCopyRequest) generation.Result {
						return g.GenerateProductCopy
					})
				},
			},
			{
				Name:  "social",
				Usage: "social ad copy with five call-to-action options",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "description", Usage: "core selling points", Required: true},
					&cli.StringFlag{Name: "audience", Usage: "target audience or buyer persona", Required: true},
					&cli.StringFlag{Name: "platform", Usage: choiceUsage(generation.SocialPlatforms), Value: generation.SocialPlatforms[0]},
					jsonFlag,
				},
				Action: func(c *cli.Context) error {
					req := generation.SocialCopyRequest{
						Description: c.String("description"),
						Audience:    c.String("audience"),
						Platform:    c.String("platform"),
					}
					return runFlow(c, newService, out, req, func(g api.CopyGenerator) func(context.Context, generation.SocialCopyRequest) generation.Result {
						return g.GenerateSocialCopy
					})
				},
			},
			{
				Name:  "email",
				Usage: "eight pain-point email subject lines",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "benefit", Usage: "main product benefit or solution", Required: true},
					&cli.StringFlag{Name: "pain-point", Usage: "key customer pain point", Required: true},
					&cli.StringFlag{Name: "tone", Usage: choiceUsage(generation.EmailTones), Value: generation.EmailTones[0]},
					jsonFlag,
				},
				Action: func(c *cli.Context) error {
					req := generation.EmailSubjectsRequest{
						Benefit:   c.String("benefit"),
						PainPoint: c.String("pain-point"),
						Tone:      c.String("tone"),
					}
					return runFlow(c, newService, out, req, func(g api.CopyGenerator) func(context.Context, generation.EmailSubjectsRequest) generation.Result {
						return g.GenerateEmailSubjects
					})
				},
			},
		},
	}
}

// runFlow validates req, runs the flow and prints the result. A failed
// generation is printed too and exits with status 1.
func runFlow[T any](
	c *cli.Context,
	newService serviceFactory,
	out io.Writer,
	req T,
	flow func(api.CopyGenerator) func(context.Context, T) generation.Result,
) error {
	if err := shared.ValidateRequest(req); err != nil {
		return &exitError{code: 2, msg: strings.Join(shared.ValidationMessages(err), "\n")}
	}

	service, err := newService(c.Context)
	if err != nil {
		return &exitError{code: 1, msg: err.Error()}
	}

	result := flow(service)(c.Context, req)

	if c.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(api.GenerationResponse{
			Flow:      result.Flow,
			Model:     result.Model,
			RequestID: result.RequestID.String(),
			Markdown:  result.Markdown(),
			Failure:   result.Failure,
		}); err != nil {
			return &exitError{code: 1, msg: err.Error()}
		}
	} else {
		fmt.Fprintln(out, result.Markdown())
	}

	if !result.OK() {
		return &exitError{code: 1}
	}
	return nil
}

func choiceUsage(choices []string) string {
	return "one of: " + strings.Join(choices, " | ")
}
