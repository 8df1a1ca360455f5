package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"browserbase-agent/internal/config"
	"browserbase-agent/internal/di"
	"browserbase-agent/internal/domain/entity"
	"browserbase-agent/internal/infrastructure/env"
)

// sessionAPI покрывает операции клиента Browserbase, нужные CLI.
type sessionAPI interface {
	Create(ctx context.Context, params entity.SessionCreateParams) (*entity.Session, error)
	Get(ctx context.Context, id string) (*entity.Session, error)
	List(ctx context.Context, status entity.SessionStatus) ([]entity.Session, error)
	Release(ctx context.Context, id string) error
	Debug(ctx context.Context, id string) (*entity.SessionDebug, error)
}

type withSessions func(cmd *cobra.Command, fn func(ctx context.Context, api sessionAPI) error) error

// containerSessions поднимает контейнер на время одной подкоманды.
func containerSessions(cmd *cobra.Command, fn func(ctx context.Context, api sessionAPI) error) error {
	envService, err := env.NewEnvService(env.Options{})
	if err != nil {
		return err
	}
	cfg := config.Load(envService, config.ProviderOpenAI)
	cfg.Infrastructure = config.InfrastructureRemote
	if err := cfg.Validate(config.RequireBrowserbase); err != nil {
		return err
	}
	return di.WithContainer(cmd.Context(), cfg, di.Options{TaskName: "sessions"}, func(ctx context.Context, c *di.Container) error {
		return fn(ctx, c.Sessions)
	})
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(containerSessions)
}

func newRootCmdWith(with withSessions) *cobra.Command {
	root := &cobra.Command{
		Use:           "sessions",
		Short:         "Manage Browserbase browser sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newCreateCmd(with),
		newListCmd(with),
		newGetCmd(with),
		newReleaseCmd(with),
		newDebugCmd(with),
	)
	return root
}

func newCreateCmd(with withSessions) *cobra.Command {
	var params entity.SessionCreateParams
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new session",
		Long:  "Create a new Browserbase session and print it as JSON, including the CDP connect URL.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return with(cmd, func(ctx context.Context, api sessionAPI) error {
				session, err := api.Create(ctx, params)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), session)
			})
		},
	}
	cmd.Flags().BoolVar(&params.KeepAlive, "keep-alive", false, "keep the session alive after disconnect")
	cmd.Flags().BoolVar(&params.Proxies, "proxies", false, "route traffic through Browserbase proxies")
	cmd.Flags().StringVar(&params.Region, "region", "", "session region")
	cmd.Flags().IntVar(&params.Timeout, "timeout", 0, "session timeout in seconds")
	return cmd
}

func newListCmd(with withSessions) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return with(cmd, func(ctx context.Context, api sessionAPI) error {
				sessions, err := api.List(ctx, entity.SessionStatus(status))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), sessions)
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by status (RUNNING, ERROR, TIMED_OUT, COMPLETED)")
	return cmd
}

func newGetCmd(with withSessions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return with(cmd, func(ctx context.Context, api sessionAPI) error {
				session, err := api.Get(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), session)
			})
		},
	}
}

func newReleaseCmd(with withSessions) *cobra.Command {
	return &cobra.Command{
		Use:   "release <session-id>",
		Short: "Release a running session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return with(cmd, func(ctx context.Context, api sessionAPI) error {
				if err := api.Release(ctx, args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "released %s\n", args[0])
				return err
			})
		},
	}
}

func newDebugCmd(with withSessions) *cobra.Command {
	return &cobra.Command{
		Use:   "debug <session-id>",
		Short: "Print live debugger URLs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return with(cmd, func(ctx context.Context, api sessionAPI) error {
				debug, err := api.Debug(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), debug)
			})
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
