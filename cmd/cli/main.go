package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hypotourney/adapters/excel"
	"hypotourney/domain/core"
	"hypotourney/domain/game"
	"hypotourney/domain/persona"
	"hypotourney/domain/prob"
	"hypotourney/domain/session"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hypotourney-cli",
		Short: "Run hypothesis tournaments from scenario files in the terminal",
	}

	rootCmd.AddCommand(
		newInspectCmd(),
		newPlayCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadScenario(path string) (*game.Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	var scenario game.Scenario
	if err := json.Unmarshal(raw, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	if scenario.Scoring.Budget == 0 {
		scenario.Scoring = game.DefaultScoring()
	}
	return &scenario, nil
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [scenario.json]",
		Short: "Show paradigms, priors, and evidence strength for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := loadScenario(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Proposition: %s\n\n", scenario.Proposition)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprint(w, "Hypothesis")
			for _, p := range scenario.Paradigms {
				fmt.Fprintf(w, "\t%s", p.Name)
			}
			fmt.Fprintln(w)
			for _, h := range scenario.Hypotheses {
				fmt.Fprint(w, h.Name)
				for _, p := range scenario.Paradigms {
					fmt.Fprintf(w, "\t%s", prob.FormatPercent(scenario.Priors.Get(p.ID, h.ID)))
				}
				fmt.Fprintln(w)
			}
			w.Flush()

			for _, report := range scenario.Priors.CheckDistributions(scenario.Paradigms, scenario.HypothesisOrder()) {
				if !report.Valid {
					fmt.Printf("warning: %s priors sum to %.3f\n", report.Paradigm, report.Sum)
				}
			}

			fmt.Println()
			for _, cluster := range scenario.Evidence {
				fmt.Printf("Evidence: %s\n", cluster.Name)
				for _, item := range cluster.Items {
					woe := prob.WeightOfEvidence(item.LikelihoodRatio)
					fmt.Printf("  %-40s LR %s, %s (%s)\n",
						item.Summary,
						prob.FormatLikelihoodRatio(item.LikelihoodRatio),
						prob.FormatWoE(woe),
						prob.ClassifyWoE(woe))
				}
			}
			return nil
		},
	}
}

func newPlayCmd() *cobra.Command {
	var paradigmID string
	var exportPath string

	cmd := &cobra.Command{
		Use:   "play [scenario.json]",
		Short: "Auto-play a tournament and print the leaderboard",
		Long: `Play one tournament from a scenario file. The player's bets follow
the chosen paradigm's priors, every evidence cluster is revealed in
order, and the settled leaderboard is printed at the end.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := loadScenario(args[0])
			if err != nil {
				return err
			}

			sess, err := session.New(scenario)
			if err != nil {
				return err
			}
			if paradigmID != "" {
				ids := make([]core.ParadigmID, 0, len(scenario.Paradigms))
				for _, p := range scenario.Paradigms {
					ids = append(ids, p.ID)
				}
				if err := sess.SelectParadigms(ids, core.ParadigmID(paradigmID)); err != nil {
					return err
				}
			}

			for sess.Phase.Current != game.PhaseBetting {
				if err := sess.Phase.Advance(); err != nil {
					return err
				}
			}

			bets := persona.GenerateBets(scenario.Priors[sess.ActiveParadigm], scenario.HypothesisOrder(), scenario.Scoring.Budget)
			if err := sess.Ledger.PlaceInitialBets(bets); err != nil {
				return err
			}
			sess.SeedCompetitors()
			if err := sess.Phase.Advance(); err != nil {
				return err
			}

			for !sess.AllRevealed() {
				cluster := sess.RevealNext()
				fmt.Printf("Revealed: %s\n", cluster.Name)
				for _, item := range cluster.Items {
					woe := prob.WeightOfEvidence(item.LikelihoodRatio)
					fmt.Printf("  %s (%s)\n", item.Summary, prob.FormatWoE(woe))
				}
			}
			if err := sess.Phase.Advance(); err != nil {
				return err
			}
			if err := sess.Settle(); err != nil {
				return err
			}

			winner := scenario.FindHypothesis(sess.WinningHypothesis())
			if winner != nil {
				fmt.Printf("\nWinning hypothesis: %s\n\n", winner.Name)
			}

			entries, err := sess.Leaderboard()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "Rank\tCompetitor\tBet\tPayoff")
			for _, e := range entries {
				payoff := 0.0
				if e.Competitor.Payoff != nil {
					payoff = *e.Competitor.Payoff
				}
				fmt.Fprintf(w, "%d\t%s %s\t%d\t%s\n",
					e.Rank, e.Competitor.Persona.Icon, e.Competitor.Persona.Name,
					e.Competitor.Bets.Total(), prob.FormatCredits(payoff))
			}
			w.Flush()

			if exportPath != "" {
				if err := excel.NewDebriefWriter().Write(sess, exportPath); err != nil {
					return err
				}
				fmt.Printf("\nDebrief written to %s\n", exportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&paradigmID, "paradigm", "", "paradigm to bet through (default: first in scenario)")
	cmd.Flags().StringVar(&exportPath, "export", "", "write the debrief workbook to this path")
	return cmd
}
