package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"advisor/internal/clusters"
	"advisor/internal/fetch"
	"advisor/internal/tui"
)

type sourceFlags struct {
	content  string
	clusters string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.content, "content", "", "recommendation response file (YAML or JSON)")
	cmd.Flags().StringVar(&s.clusters, "clusters", "", "affected clusters feed (one JSON record per line)")
	_ = cmd.MarkFlagRequired("content")
}

func newViewCmd(a *app) *cobra.Command {
	var src sourceFlags
	cmd := &cobra.Command{
		Use:   "view <recommendation-id>",
		Short: "Open the interactive recommendation view",
		Example: "  advisor view 'ccx_rules_ocp.external.rules.nodes_requirements_check|NODES_MINIMUM_REQUIREMENTS_NOT_MET' \\\n" +
			"    --content rule.yaml --clusters clusters.ndjson --watch",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runView(cmd, args[0], src)
		},
	}
	src.register(cmd)
	cmd.Flags().Bool("watch", false, "reload the recommendation and follow the clusters feed")
	return cmd
}

func (a *app) runView(cmd *cobra.Command, id string, src sourceFlags) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	states, err := fetch.NewProvider(fetch.ProviderConfig{Path: src.content, Watch: a.cfg.Watch}).Start(ctx)
	if err != nil {
		return err
	}

	var events <-chan clusters.Event
	if src.clusters != "" {
		if events, err = clusters.Open(ctx, clusters.FeedConfig{Path: src.clusters, Follow: a.cfg.Watch}); err != nil {
			return err
		}
	}

	logger().Info().Str("recommendation", id).Bool("watch", a.cfg.Watch).Msg("starting view")
	model := tui.NewModel(tui.ModelConfig{
		States:    states,
		Clusters:  events,
		Route:     tui.RouteParams{RecommendationID: id},
		Tables:    a.tables,
		ThemeName: a.cfg.Theme,
		Messages:  a.messages,
		Markdown:  tui.NewMarkdownRenderer(a.cfg.MarkdownStyle),
		PageSize:  a.cfg.PageSize,
	})
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run view: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
