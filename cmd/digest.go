package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"findigest/internal/config"
	"findigest/internal/digest"
	"findigest/internal/logger"
	"findigest/internal/mail"
	"findigest/internal/render"
	"findigest/internal/source"
	"findigest/pkg/models"
)

func runDigest(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("digest-cmd")

	envFile, _ := cmd.Flags().GetString("env")
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	theme, _ := cmd.Flags().GetString("theme")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	email, _ := cmd.Flags().GetString("email")
	moduleList, _ := cmd.Flags().GetString("modules")
	testConn, _ := cmd.Flags().GetBool("test-connection")

	if envFile != "" {
		if err := godotenv.Overload(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
		log.Debug().Str("env_file", envFile).Msg("Loaded alternate env file")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := source.NewClient(source.Config{
		BaseURL:  cfg.ServerURL,
		Company:  cfg.Company,
		Username: cfg.ServerUser,
		Password: cfg.ServerPassword,
		Timeout:  time.Duration(cfg.RequestTimeoutSecs) * time.Second,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if testConn {
		if err := client.TestConnection(ctx); err != nil {
			return err
		}
		fmt.Printf("Connection to %s (company %s) OK\n", cfg.ServerURL, cfg.Company)
		return nil
	}

	period, err := parsePeriod(startStr, endStr, time.Now())
	if err != nil {
		return err
	}

	modules, err := selectModules(client, moduleList)
	if err != nil {
		return err
	}

	orchestrator := digest.NewOrchestrator(cfg.SourceName, modules...)
	result := orchestrator.Run(ctx, period)

	output, err := formatDigest(result, format, theme)
	if err != nil {
		return err
	}

	if err := writeOutput(output, outputPath); err != nil {
		return err
	}

	if email != "" {
		if err := sendDigestMail(ctx, cfg, result, email); err != nil {
			return err
		}
	}

	return nil
}

// parsePeriod resolves the --start/--end flags. A missing end defaults to
// now's date; a missing start defaults to the first day of the end's month.
func parsePeriod(startStr, endStr string, now time.Time) (models.Period, error) {
	if startStr == "" && endStr == "" {
		return models.CurrentMonth(now), nil
	}

	end := now
	if endStr != "" {
		parsed, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return models.Period{}, fmt.Errorf("invalid --end date %q: expected YYYY-MM-DD", endStr)
		}
		end = parsed
	}

	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
	if startStr != "" {
		parsed, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return models.Period{}, fmt.Errorf("invalid --start date %q: expected YYYY-MM-DD", startStr)
		}
		start = parsed
	}

	return models.NewPeriod(start, end)
}

// selectModules builds the module list in a fixed registration order,
// restricted by the --modules flag when given.
func selectModules(client *source.Client, moduleList string) ([]digest.Module, error) {
	all := []digest.Module{
		digest.NewInvoiceModule(client),
		digest.NewDebtorModule(client),
	}
	if moduleList == "" {
		return all, nil
	}

	wanted := make(map[string]bool)
	for _, name := range strings.Split(moduleList, ",") {
		wanted[strings.TrimSpace(name)] = true
	}

	var selected []digest.Module
	for _, m := range all {
		if wanted[m.Name()] {
			selected = append(selected, m)
			delete(wanted, m.Name())
		}
	}
	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for name := range wanted {
			unknown = append(unknown, strconv.Quote(name))
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown module(s) %s (available: %s, %s)",
			strings.Join(unknown, ", "), digest.ModuleInvoices, digest.ModuleDebtors)
	}
	return selected, nil
}

// formatDigest renders the combined result in the requested output format.
func formatDigest(result *digest.CombinedResult, format, theme string) (string, error) {
	switch format {
	case "html":
		return renderHTML(result, theme)
	case "json":
		var buf strings.Builder
		if err := render.WriteJSON(&buf, result); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unknown format %q (expected html or json)", format)
	}
}

func renderHTML(result *digest.CombinedResult, theme string) (string, error) {
	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		return "", err
	}
	return renderer.Render(result, theme)
}

// writeOutput writes the rendered digest to the requested file, or stdout.
func writeOutput(output, outputPath string) error {
	log := logger.WithComponent("digest-cmd")

	if outputPath == "" {
		fmt.Print(output)
		if !strings.HasSuffix(output, "\n") {
			fmt.Println()
		}
		return nil
	}

	if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputPath, err)
	}
	log.Info().
		Str("output_file", outputPath).
		Int("bytes", len(output)).
		Msg("Digest written to file")
	return nil
}

// sendDigestMail emails the digest. The mail body is always the HTML
// rendering with the default theme, regardless of --format.
func sendDigestMail(ctx context.Context, cfg *config.Config, result *digest.CombinedResult, email string) error {
	if err := cfg.ValidateSMTP(); err != nil {
		return err
	}

	body, err := renderHTML(result, render.DefaultTheme)
	if err != nil {
		return err
	}

	var recipients []string
	for _, r := range strings.Split(email, ",") {
		if r = strings.TrimSpace(r); r != "" {
			recipients = append(recipients, r)
		}
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no valid recipients in --email %q", email)
	}

	sender := mail.NewSMTPSender(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	subject := fmt.Sprintf("Accounting digest %s – %s", result.PeriodStart, result.PeriodEnd)
	return sender.Send(ctx, recipients, subject, body)
}
