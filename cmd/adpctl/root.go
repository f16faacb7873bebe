package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-league-hub/internal/app"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/adp"
	"github.com/riskibarqy/fantasy-league-hub/internal/usecase"
	"github.com/spf13/cobra"
)

type servicesFactory func(ctx context.Context) (*app.Services, error)

type cli struct {
	out         io.Writer
	newServices servicesFactory
}

func newRootCmd(out io.Writer, newServices servicesFactory) *cobra.Command {
	c := &cli{out: out, newServices: newServices}

	root := &cobra.Command{
		Use:          "adpctl",
		Short:        "Aggregate Sleeper draft picks into ADP tables",
		SilenceUsage: true,
	}
	root.SetOut(out)

	root.AddCommand(
		c.leaguesCmd(),
		c.buildCmd(),
		c.compareCmd(),
		c.roundPickCmd(),
		c.snapshotCmd(),
	)
	return root
}

// withServices runs fn against freshly wired services and closes them afterwards.
func (c *cli) withServices(ctx context.Context, fn func(*app.Services) error) error {
	services, err := c.newServices(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = services.Close() }()

	return fn(services)
}

func (c *cli) printJSON(v any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(c.out, string(raw))
	return err
}

func (c *cli) leaguesCmd() *cobra.Command {
	var season string
	cmd := &cobra.Command{
		Use:   "leagues <username>",
		Short: "List a user's leagues and their draft ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withServices(cmd.Context(), func(s *app.Services) error {
				leagues, err := s.Directory.ListUserLeagues(cmd.Context(), args[0], season)
				if err != nil {
					return err
				}
				for _, l := range leagues {
					cmd.Printf("%s\t%s\t%s\t%d teams\tdraft %s\n", l.ID, l.Season, l.Name, l.TotalRosters, l.DraftID)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "season year, defaults to the current one")
	return cmd
}

func (c *cli) buildCmd() *cobra.Command {
	var include []string
	var summary bool
	cmd := &cobra.Command{
		Use:   "build <league[:draft]>...",
		Short: "Aggregate one or more drafts into a single ADP table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := groupSelection(args, include)
			if err != nil {
				return err
			}
			return c.withServices(cmd.Context(), func(s *app.Services) error {
				group, err := s.ADP.BuildGroup(cmd.Context(), input)
				if err != nil {
					return err
				}
				if summary {
					return c.printSummary(group)
				}
				return c.printJSON(group)
			})
		},
	}
	cmd.Flags().StringSliceVar(&include, "include", nil, "keep only these league ids or league:draft keys")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a ranked text table instead of JSON")
	return cmd
}

func (c *cli) compareCmd() *cobra.Command {
	var a, b []string
	var includeA, includeB []string
	var position string
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two groups of drafts player by player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			left, err := groupSelection(a, includeA)
			if err != nil {
				return fmt.Errorf("group a: %w", err)
			}
			right, err := groupSelection(b, includeB)
			if err != nil {
				return fmt.Errorf("group b: %w", err)
			}
			return c.withServices(cmd.Context(), func(s *app.Services) error {
				result, err := s.ADP.Compare(cmd.Context(), usecase.CompareInput{A: left, B: right, Position: position})
				if err != nil {
					return err
				}
				return c.printJSON(result.Comparison)
			})
		},
	}
	cmd.Flags().StringSliceVar(&a, "a", nil, "selections for group a")
	cmd.Flags().StringSliceVar(&b, "b", nil, "selections for group b")
	cmd.Flags().StringSliceVar(&includeA, "include-a", nil, "include filter for group a")
	cmd.Flags().StringSliceVar(&includeB, "include-b", nil, "include filter for group b")
	cmd.Flags().StringVar(&position, "position", "", "only compare this position")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	return cmd
}

func (c *cli) roundPickCmd() *cobra.Command {
	var teams int
	cmd := &cobra.Command{
		Use:   "roundpick <overall>...",
		Short: "Convert overall pick positions to round.pick notation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if teams <= 0 {
				return fmt.Errorf("--teams must be greater than zero")
			}
			for _, raw := range args {
				position, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
				if err != nil {
					return fmt.Errorf("invalid pick %q: %w", raw, err)
				}
				formatted := adp.FormatRoundPick(position, teams)
				if formatted == "" {
					return fmt.Errorf("pick %q is out of range", raw)
				}
				cmd.Printf("%s\t%s\n", raw, formatted)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&teams, "teams", 12, "teams per round")
	return cmd
}

func (c *cli) snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Publish and read stored group aggregates",
	}

	var include []string
	publish := &cobra.Command{
		Use:   "publish <name> <league[:draft]>...",
		Short: "Build a group and store it under name",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := groupSelection(args[1:], include)
			if err != nil {
				return err
			}
			return c.withServices(cmd.Context(), func(s *app.Services) error {
				snap, err := s.Snapshots.Publish(cmd.Context(), args[0], input)
				if err != nil {
					return err
				}
				return c.printJSON(snap)
			})
		},
	}
	publish.Flags().StringSliceVar(&include, "include", nil, "keep only these league ids or league:draft keys")

	latest := &cobra.Command{
		Use:   "latest <name>",
		Short: "Print the most recent snapshot for name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withServices(cmd.Context(), func(s *app.Services) error {
				published, err := s.Snapshots.Latest(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.printJSON(published)
			})
		},
	}

	rebuild := &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild every configured snapshot group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withServices(cmd.Context(), func(s *app.Services) error {
				result, err := s.Snapshots.RebuildAll(cmd.Context())
				if err != nil {
					return err
				}
				if err := c.printJSON(result); err != nil {
					return err
				}
				if result.FailedCount > 0 {
					return fmt.Errorf("%d of %d groups failed", result.FailedCount, result.GroupCount)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(publish, latest, rebuild)
	return cmd
}

func groupSelection(raw, include []string) (usecase.GroupSelection, error) {
	selections, err := usecase.ParseSelections(raw)
	if err != nil {
		return usecase.GroupSelection{}, err
	}
	if len(selections) == 0 {
		return usecase.GroupSelection{}, fmt.Errorf("%w: at least one league selection is required", usecase.ErrInvalidInput)
	}
	return usecase.GroupSelection{Selections: selections, Include: include}, nil
}
