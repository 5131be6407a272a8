// Command report summarizes the match archive. It prints a terminal
// leaderboard and per-ruleset statistics, and optionally writes an HTML
// report with charts rendered by go-echarts.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/urfave/cli/v3"

	"github.com/gridgames/arena/store"
)

func main() {
	cmd := &cli.Command{
		Name:  "report",
		Usage: "summarize the match archive",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db-path",
				Value:   "arena.db",
				Usage:   "SQLite archive path",
				Sources: cli.EnvVars("DB_PATH"),
			},
			&cli.StringFlag{
				Name:  "out",
				Value: "",
				Usage: "Write an HTML report with charts to this path",
			},
			&cli.IntFlag{
				Name:  "limit",
				Value: 50,
				Usage: "Number of recent matches to include",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	st, err := store.Open(cmd.String("db-path"))
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer st.Close()

	leaderboard, err := st.Leaderboard(ctx)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}
	rulesets, err := st.RulesetStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ruleset stats: %w", err)
	}
	recent, err := st.ListRecent(ctx, int(cmd.Int("limit")))
	if err != nil {
		return fmt.Errorf("failed to load recent matches: %w", err)
	}

	printSummary(os.Stdout, leaderboard, rulesets, recent)

	if out := cmd.String("out"); out != "" {
		var buf bytes.Buffer
		if err := renderReport(&buf, leaderboard, recent); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("\nHTML report written to %s\n", out)
	}

	return nil
}

// printSummary writes the leaderboard, ruleset stats, and recent matches
// as aligned tables.
func printSummary(w io.Writer, leaderboard []*store.LeaderboardEntry, rulesets []*store.RulesetStat, recent []*store.ArchivedMatch) {
	fmt.Fprintf(w, "Leaderboard (%d players)\n", len(leaderboard))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tMATCHES\tWINS\tDRAWS\tLOSSES\tWIN RATE\tBEST SCORE")
	for _, e := range leaderboard {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.1f%%\t%d\n",
			e.Name, e.Matches, e.Wins, e.Draws, e.Losses, e.WinRate*100, e.BestScore)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nRulesets (%d)\n", len(rulesets))
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULESET\tMATCHES\tWINS\tDRAWS\tAVG MOVES")
	for _, r := range rulesets {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f\n", r.Ruleset, r.Matches, r.Wins, r.Draws, r.AvgMoves)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nRecent matches (%d)\n", len(recent))
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MATCH\tCONFIG\tRULESET\tOUTCOME\tWINNER\tMOVES\tFINISHED")
	for _, m := range recent {
		outcome := string(m.Outcome)
		winner := "-"
		if m.Outcome == "win" {
			winner = m.WinnerName
			if winner == "" {
				winner = fmt.Sprintf("seat %d", m.Winner)
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			m.MatchID, m.ConfigName, m.Ruleset, outcome, winner, m.MoveCount,
			m.FinishedAt.Format("2006-01-02 15:04"))
	}
	tw.Flush()
}

// renderReport renders the leaderboard and recent-match charts to one HTML page
func renderReport(w io.Writer, leaderboard []*store.LeaderboardEntry, recent []*store.ArchivedMatch) error {
	page := components.NewPage()
	page.AddCharts(leaderboardChart(leaderboard), matchScatter(recent))
	return page.Render(w)
}

// leaderboardChart builds a grouped bar chart of wins, draws, and losses per player
func leaderboardChart(leaderboard []*store.LeaderboardEntry) *charts.Bar {
	names := make([]string, 0, len(leaderboard))
	wins := make([]opts.BarData, 0, len(leaderboard))
	draws := make([]opts.BarData, 0, len(leaderboard))
	losses := make([]opts.BarData, 0, len(leaderboard))
	for _, e := range leaderboard {
		names = append(names, e.Name)
		wins = append(wins, opts.BarData{Value: e.Wins})
		draws = append(draws, opts.BarData{Value: e.Draws})
		losses = append(losses, opts.BarData{Value: e.Losses})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Leaderboard", Subtitle: fmt.Sprintf("%d players", len(leaderboard))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("wins", wins).
		AddSeries("draws", draws).
		AddSeries("losses", losses)
	return bar
}

// matchScatter builds a scatter of move count vs. winning score for recent matches
func matchScatter(recent []*store.ArchivedMatch) *charts.Scatter {
	data := make([]opts.ScatterData, 0, len(recent))
	for _, m := range recent {
		best := 0
		for _, s := range m.Scores {
			if s > best {
				best = s
			}
		}
		data = append(data, opts.ScatterData{Value: []interface{}{m.MoveCount, best}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Match length vs. score", Subtitle: fmt.Sprintf("%d matches", len(recent))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "moves"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "best score"}),
	)
	scatter.AddSeries("matches", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	return scatter
}
