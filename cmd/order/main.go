// cmd/order/main.go
//
// Pizza – order form entry point.
//
// Usage
// -----
//
//	order                                  interactive terminal form
//	order submit --name Alice --size L \
//	      --topping 1 --topping 3           one-shot submission
//
// Flags override the `client` and `form` config sections.  Logs go to the
// configured log directory only; the terminal belongs to the form.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yanizio/pizzaorder/internal/config"
	"github.com/yanizio/pizzaorder/internal/form"
	"github.com/yanizio/pizzaorder/internal/logger"
	"github.com/yanizio/pizzaorder/internal/tui"
)

type options struct {
	baseURL        string
	validationMode string
	failurePolicy  string
}

// app bundles everything both commands need.
type app struct {
	def     *form.Definition
	state   *form.State
	sender  *form.Submitter
	log     *zap.SugaredLogger
	cleanup func()
}

func main() {
	// Interrupts cancel the command context so in-flight submissions stop.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:          "order",
		Short:        "Order a pizza from the local order API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(opts)
			if err != nil {
				return err
			}
			defer a.cleanup()

			m := tui.New(cmd.Context(), a.def, a.state, a.sender)
			if _, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run(); err != nil &&
				!errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("order form: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "order API base URL (default from config)")
	root.PersistentFlags().StringVar(&opts.validationMode, "validate-on", "", "validate on every change or at submit: change|submit")
	root.PersistentFlags().StringVar(&opts.failurePolicy, "on-failure", "", "draft policy after a failed submit: retain|clear")

	root.AddCommand(newSubmitCmd(&opts))
	return root
}

func newSubmitCmd(opts *options) *cobra.Command {
	var (
		name     string
		size     string
		toppings []string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate and submit one order without the interactive form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(*opts)
			if err != nil {
				return err
			}
			defer a.cleanup()

			a.state.SetFullName(name)
			a.state.SetSize(form.Size(size))
			for _, id := range toppings {
				if err := a.state.ToggleTopping(id); err != nil {
					return err
				}
			}

			snap, err := form.NewSession(a.state, a.sender).Submit(cmd.Context())
			var ve form.ValidationError
			switch {
			case errors.As(err, &ve):
				for _, f := range ve.Fields.Fields() {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", f, ve.Fields[f])
				}
				return err
			case err != nil:
				fmt.Fprintln(cmd.ErrOrStderr(), snap.Result.Failure)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), snap.Result.Success)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name (3 to 20 characters)")
	cmd.Flags().StringVar(&size, "size", "", "pizza size: S, M, or L")
	cmd.Flags().StringSliceVar(&toppings, "topping", nil, "topping id, repeatable")
	return cmd
}

// setup loads config, applies flag overrides, and builds the form pieces.
func setup(opts options) (*app, error) {
	loaded, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := *loaded // flag overrides stay local

	log, err := logger.New(cfg.Log.Dir, "order", cfg.Log.Level, false)
	if err != nil {
		return nil, fmt.Errorf("start logger: %w", err)
	}

	if opts.baseURL != "" {
		cfg.Client.BaseURL = opts.baseURL
	}
	if opts.validationMode != "" {
		cfg.Form.ValidationMode = opts.validationMode
	}
	if opts.failurePolicy != "" {
		cfg.Form.FailurePolicy = opts.failurePolicy
	}

	mode, err := form.ParseValidationMode(cfg.Form.ValidationMode)
	if err != nil {
		return nil, err
	}
	policy, err := form.ParseFailurePolicy(cfg.Form.FailurePolicy)
	if err != nil {
		return nil, err
	}

	def := form.DefaultDefinition()
	if cfg.Form.Definition != "" {
		if def, err = form.LoadDefinition(cfg.Form.Definition); err != nil {
			return nil, err
		}
	}

	catalog := def.Catalog()
	sender := form.NewSubmitter(cfg.Client.BaseURL, catalog, form.WithTimeout(cfg.Client.Timeout))
	log.Infow("order form ready",
		"endpoint", sender.Endpoint(),
		"validation_mode", cfg.Form.ValidationMode,
		"failure_policy", cfg.Form.FailurePolicy,
	)

	return &app{
		def:     def,
		state:   form.NewState(catalog, form.WithValidationMode(mode), form.WithFailurePolicy(policy)),
		sender:  sender,
		log:     log,
		cleanup: func() { _ = log.Sync() },
	}, nil
}
