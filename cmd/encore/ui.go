package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"encore/internal/game"
	"encore/internal/save"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptOptional(label string) (string, error) {
	fmt.Printf("%s: ", label)
	text, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func promptFloat(label string, min float64) (float64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			printWarn("Enter a valid number.")
			continue
		}
		if v <= min {
			printWarn(fmt.Sprintf("Value must be > %.2f", min))
			continue
		}
		return v, nil
	}
}

func promptInt64(label string, min int64) (int64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			printWarn("Enter a whole number.")
			continue
		}
		if v < min {
			printWarn(fmt.Sprintf("Value must be >= %d", min))
			continue
		}
		return v, nil
	}
}

func promptQuality(label string) (int, error) {
	for {
		v, err := promptInt64(fmt.Sprintf("%s (1-10)", label), 1)
		if err != nil {
			return 0, err
		}
		if v > int64(game.MaxQuality) {
			printWarn("Quality tops out at 10.")
			continue
		}
		return int(v), nil
	}
}

func promptTiers(labels []string) ([]int, error) {
	out := make([]int, 0, len(labels))
	for _, label := range labels {
		v, err := promptQuality(label)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func promptStageName(label string) (string, error) {
	for {
		name, err := promptRequired(label)
		if err != nil {
			return "", err
		}
		if err := game.ValidateStageName(name); err != nil {
			printWarn(err.Error())
			continue
		}
		return name, nil
	}
}

func promptPlatform() (game.Platform, error) {
	opts := make([]string, 0, 4)
	for _, p := range game.Platforms() {
		opts = append(opts, string(p))
	}
	choice, err := promptChoice("Platform", opts, string(game.PlatformStreamify))
	if err != nil {
		return "", err
	}
	return game.Platform(choice), nil
}

func renderSlots(slots []save.SlotInfo, active int) {
	accent.Println("\n== SAVE SLOTS ==")
	fmt.Printf("%-6s %-16s %-10s %-6s %-16s %-8s\n", "SLOT", "STAGE NAME", "WEEK", "LEVEL", "LAST PLAYED", "ACTIVE")
	for _, s := range slots {
		marker := ""
		if s.Slot == active {
			marker = "*"
		}
		if s.Empty {
			fmt.Printf("%-6d %-16s %-10s %-6s %-16s %-8s\n", s.Slot, "(empty)", "-", "-", "-", marker)
			continue
		}
		fmt.Printf("%-6d %-16s %-10s %-6d %-16s %-8s\n",
			s.Slot,
			truncate(s.StageName, 16),
			fmt.Sprintf("W%d/%d", s.Week, s.Year),
			s.Level,
			s.LastPlayed,
			marker,
		)
	}
	fmt.Println()
}

func renderStatus(st game.State) {
	p := st.Player
	lvl := game.CurrentLevel(p.Fame, p.Reputation)

	accent.Printf("\n== %s (Week %d, %d) ==\n", strings.ToUpper(p.StageName), p.Week, p.Year)
	fmt.Printf("Level:       %d %s (%.0f%% to next)\n", lvl.ID, lvl.Name, st.LevelProgress)
	fmt.Printf("Fame:        %d   Reputation: %d\n", p.Fame, p.Reputation)
	fmt.Printf("Fans:        %s\n", comma(p.Fans))
	fmt.Printf("Net Worth:   %s\n", formatCents(p.NetWorthCents))
	fmt.Printf("Energy:      %d/%d\n", p.Energy, game.MaxEnergy)
	fmt.Printf("Skills:      lyr=%d flo=%d cha=%d bus=%d pro=%d\n",
		p.Skills.Lyrics, p.Skills.Flow, p.Skills.Charisma, p.Skills.Business, p.Skills.Production)
	fmt.Printf("Earnings:    total %s, this week %s\n",
		formatCents(st.Earnings.TotalCents), formatCents(st.Earnings.ThisWeekCents))

	fmt.Println()
	accent.Println("Social")
	for _, plat := range game.Platforms() {
		stats := p.Social[plat]
		fmt.Printf("%-12s %12s followers %8d posts\n", plat, comma(stats.Followers), stats.Posts)
	}

	fmt.Println()
	accent.Println("Releases")
	if len(st.Releases) == 0 {
		printInfo("Nothing out yet. Record and release something.")
	} else {
		fmt.Printf("%-22s %-8s %-10s %12s %12s %-6s %-8s\n", "TITLE", "TYPE", "PLATFORM", "VIEWS", "EARNED", "CHART", "FLAGS")
		for _, r := range st.Releases {
			flags := ""
			if r.Viral {
				flags += "V"
			}
			if r.Trending {
				flags += "T"
			}
			chart := "-"
			if r.ChartPosition > 0 {
				chart = fmt.Sprintf("#%d", r.ChartPosition)
			}
			fmt.Printf("%-22s %-8s %-10s %12s %12s %-6s %-8s\n",
				truncate(r.Title, 22),
				r.Type,
				r.Platform,
				comma(r.Views),
				formatCents(r.EarningsCents),
				chart,
				flags,
			)
		}
	}
	fmt.Println()
}

func renderTrackPicker(tracks []game.Track) {
	accent.Println("\nEligible tracks")
	fmt.Printf("%-22s %-24s %8s\n", "ID", "TITLE", "QUALITY")
	for _, t := range tracks {
		fmt.Printf("%-22s %-24s %8d\n", t.ID, truncate(t.Title, 24), t.Quality)
	}
	fmt.Println()
}

func renderJobs(jobs []game.JobDef) {
	accent.Println("\n== JOB BOARD ==")
	fmt.Printf("%-18s %-20s %12s %8s\n", "ID", "NAME", "BASE PAY", "ENERGY")
	for _, j := range jobs {
		fmt.Printf("%-18s %-20s %12s %8d\n", j.ID, j.Name, formatCents(j.PayCents), j.EnergyCost)
	}
	fmt.Println()
}

func renderShop(items []game.ShopItem) {
	accent.Println("\n== GEAR SHOP ==")
	fmt.Printf("%-18s %-24s %12s\n", "ID", "NAME", "PRICE")
	for _, it := range items {
		fmt.Printf("%-18s %-24s %12s\n", it.ID, truncate(it.Name, 24), formatCents(it.CostCents))
	}
	fmt.Println()
}

func renderFeed(notes []game.Notification) {
	accent.Println("\n== FEED ==")
	if len(notes) == 0 {
		printInfo("Nothing in the feed yet.")
		return
	}
	for _, n := range notes {
		stamp := fmt.Sprintf("[W%d/%d]", n.Week, n.Year)
		line := fmt.Sprintf("%s %s: %s", stamp, n.Title, n.Message)
		switch n.Kind {
		case game.NoteSuccess, game.NoteAchievement:
			success.Println(line)
		case game.NoteWarning:
			warn.Println(line)
		default:
			fmt.Println(line)
		}
	}
	fmt.Println()
}

func renderLevelChange(res game.Result) {
	if res.LevelAfter <= res.LevelBefore {
		return
	}
	lvl := game.Levels()[res.LevelAfter-1]
	success.Printf("LEVEL UP: %s. Unlocked: %s.\n", lvl.Name, lvl.Unlocks)
}

func renderWeekSummary(before game.State, res game.Result) {
	st := res.State
	p := st.Player

	accent.Printf("\n== WEEK %d, %d ==\n", p.Week, p.Year)
	fmt.Printf("Fame:       %d (%+d)\n", p.Fame, p.Fame-before.Player.Fame)
	fmt.Printf("Reputation: %d (%+d)\n", p.Reputation, p.Reputation-before.Player.Reputation)
	fmt.Printf("Fans:       %s (%s)\n", comma(p.Fans), signedComma(p.Fans-before.Player.Fans))
	fmt.Printf("Royalties:  %s\n", colorizeCents(st.Earnings.ThisWeekCents))
	fmt.Printf("Net Worth:  %s\n", formatCents(p.NetWorthCents))
	fmt.Printf("Energy:     %d/%d\n", p.Energy, game.MaxEnergy)
	renderLevelChange(res)

	// Settlement notifications carry the week that was settled, not the new one.
	for _, n := range st.Notifications {
		if n.Week != before.Player.Week || n.Year != before.Player.Year {
			continue
		}
		fmt.Printf("  %s: %s\n", n.Title, n.Message)
	}
	fmt.Println()
}

func colorizeCents(v int64) string {
	text := formatCents(v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func formatCents(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%s.%02d", sign, comma(v/game.CentsPerDollar), v%game.CentsPerDollar)
}

func comma(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if len(s) > 3 {
		var b strings.Builder
		pre := len(s) % 3
		if pre > 0 {
			b.WriteString(s[:pre])
			b.WriteByte(',')
		}
		for i := pre; i < len(s); i += 3 {
			b.WriteString(s[i : i+3])
			if i+3 < len(s) {
				b.WriteByte(',')
			}
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

func signedComma(v int64) string {
	if v > 0 {
		return "+" + comma(v)
	}
	return comma(v)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
