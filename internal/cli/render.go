package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"advisor/internal/clusters"
	"advisor/internal/fetch"
	"advisor/internal/tui"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		src   sourceFlags
		width int
	)
	cmd := &cobra.Command{
		Use:   "render <recommendation-id>",
		Short: "Print the recommendation page once and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.render(cmd.Context(), args[0], src, width)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	src.register(cmd)
	cmd.Flags().IntVar(&width, "width", 100, "output width in columns")
	return cmd
}

func (a *app) render(ctx context.Context, id string, src sourceFlags, width int) (string, error) {
	st := fetch.Load(src.content)
	if st.Status == fetch.StatusError {
		logger().Error().Err(st.Err).Str("recommendation", id).Msg("fetch failed")
	}

	var events <-chan clusters.Event
	if src.clusters != "" {
		var err error
		if events, err = clusters.Open(ctx, clusters.FeedConfig{Path: src.clusters}); err != nil {
			return "", err
		}
	}
	table := tui.NewClustersTable(events, a.cfg.PageSize)
	table.Drain()

	env := tui.Env{
		Theme:    tui.ThemeByName(a.cfg.Theme),
		Messages: a.messages,
		Markdown: tui.NewMarkdownRenderer(a.cfg.MarkdownStyle),
		Tables:   a.tables,
	}
	return tui.RenderPage(tui.PageInput{
		Env:      env,
		State:    st,
		Route:    tui.RouteParams{RecommendationID: id},
		Clusters: &table,
		Width:    width,
	})
}
