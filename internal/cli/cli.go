// Package cli implements promptctl's subcommands on top of the prompt client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dimitrije/prompthub/internal/contract"
	"github.com/dimitrije/prompthub/internal/models"
	"github.com/dimitrije/prompthub/pkg/dto"
)

// PromptAPI is the subset of the prompt client the commands use.
type PromptAPI interface {
	List(ctx context.Context) ([]models.Prompt, error)
	GetByID(ctx context.Context, id int64) (*models.Prompt, error)
	Create(ctx context.Context, req dto.CreatePromptRequest) (*models.Prompt, error)
	Update(ctx context.Context, id int64, req dto.UpdatePromptRequest) (*models.Prompt, error)
	Remove(ctx context.Context, id int64) (*dto.MessageResponse, error)
	Health(ctx context.Context) (*dto.HealthResponse, error)
}

var (
	ErrUsage   = errors.New("usage error")
	ErrAborted = errors.New("aborted")
)

const Usage = `Usage: promptctl [-o json|yaml] [-base-url URL] [-v] <command> [args]

Commands:
  list                                   list all prompts
  get <id>                               show one prompt
  create -title T -content C [-category X]
  update <id> [-title T] [-content C] [-category X]
  delete <id> [-y]                       delete a prompt
  health                                 check the backend
  contract [-format json|yaml]           print the OpenAPI contract
`

type App struct {
	api        PromptAPI
	out        io.Writer
	errOut     io.Writer
	in         io.Reader
	format     string
	isTerminal func() bool
}

type Options struct {
	Out    io.Writer
	ErrOut io.Writer
	In     io.Reader
	Format string
	// IsTerminal reports whether In is interactive; delete only asks for
	// confirmation when it is.
	IsTerminal func() bool
}

func New(api PromptAPI, opts Options) *App {
	format := opts.Format
	if format == "" {
		format = FormatJSON
	}
	isTerminal := opts.IsTerminal
	if isTerminal == nil {
		isTerminal = func() bool { return false }
	}
	return &App{
		api:        api,
		out:        opts.Out,
		errOut:     opts.ErrOut,
		in:         opts.In,
		format:     format,
		isTerminal: isTerminal,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", ErrUsage)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		return a.list(ctx)
	case "get":
		return a.get(ctx, rest)
	case "create":
		return a.create(ctx, rest)
	case "update":
		return a.update(ctx, rest)
	case "delete":
		return a.remove(ctx, rest)
	case "health":
		return a.health(ctx)
	case "contract":
		return a.contract(rest)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func (a *App) list(ctx context.Context) error {
	prompts, err := a.api.List(ctx)
	if err != nil {
		return err
	}
	return a.print(prompts)
}

func (a *App) get(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: get takes exactly one id", ErrUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	prompt, err := a.api.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return a.print(prompt)
}

func (a *App) create(ctx context.Context, args []string) error {
	fs := a.newFlagSet("create")
	title := fs.String("title", "", "prompt title")
	content := fs.String("content", "", "prompt content")
	category := fs.String("category", "", "optional category")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	set := setFlags(fs)
	if !set["title"] || !set["content"] {
		return fmt.Errorf("%w: create requires -title and -content", ErrUsage)
	}

	req := dto.CreatePromptRequest{Title: *title, Content: *content}
	if set["category"] {
		req.Category = category
	}

	prompt, err := a.api.Create(ctx, req)
	if err != nil {
		return err
	}
	return a.print(prompt)
}

func (a *App) update(ctx context.Context, args []string) error {
	fs := a.newFlagSet("update")
	title := fs.String("title", "", "new title")
	content := fs.String("content", "", "new content")
	category := fs.String("category", "", "new category")

	id, err := parseIDAndFlags(fs, args)
	if err != nil {
		return err
	}

	set := setFlags(fs)
	var req dto.UpdatePromptRequest
	if set["title"] {
		req.Title = title
	}
	if set["content"] {
		req.Content = content
	}
	if set["category"] {
		req.Category = category
	}

	prompt, err := a.api.Update(ctx, id, req)
	if err != nil {
		return err
	}
	return a.print(prompt)
}

func (a *App) remove(ctx context.Context, args []string) error {
	fs := a.newFlagSet("delete")
	yes := fs.Bool("y", false, "skip confirmation")

	id, err := parseIDAndFlags(fs, args)
	if err != nil {
		return err
	}

	if !*yes && a.isTerminal() {
		ok, err := a.confirm(fmt.Sprintf("Delete prompt %d? [y/N]: ", id))
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	resp, err := a.api.Remove(ctx, id)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func (a *App) health(ctx context.Context) error {
	resp, err := a.api.Health(ctx)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func (a *App) contract(args []string) error {
	fs := a.newFlagSet("contract")
	format := fs.String("format", a.format, "json or yaml")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	var (
		data []byte
		err  error
	)
	switch *format {
	case FormatJSON:
		data, err = contract.JSON()
	case FormatYAML:
		data, err = contract.YAML()
	default:
		return fmt.Errorf("%w: unknown format %q", ErrUsage, *format)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.out, strings.TrimRight(string(data), "\n"))
	return err
}

func (a *App) confirm(question string) (bool, error) {
	fmt.Fprint(a.errOut, question)

	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func (a *App) print(v any) error {
	return Write(a.out, a.format, v)
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id %q", ErrUsage, value)
	}
	return id, nil
}

// parseIDAndFlags accepts the id either before or after the flags.
func parseIDAndFlags(fs *flag.FlagSet, args []string) (int64, error) {
	var idArg string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		idArg, args = args[0], args[1:]
	}

	if err := fs.Parse(args); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if idArg == "" {
		if fs.NArg() == 0 {
			return 0, fmt.Errorf("%w: %s requires an id", ErrUsage, fs.Name())
		}
		idArg = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return 0, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	return parseID(idArg)
}

func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}
