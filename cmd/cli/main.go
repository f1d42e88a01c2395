package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/shettydevesh/zenvestAi-backend/internal/analyzer"
	"github.com/shettydevesh/zenvestAi-backend/internal/fidata"
	"github.com/shettydevesh/zenvestAi-backend/internal/logger"
	"github.com/shettydevesh/zenvestAi-backend/internal/prompt"
	store "github.com/shettydevesh/zenvestAi-backend/internal/store/bigquery"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "normalize":
		runNormalize(log)
	case "analyze":
		runAnalyze(log)
	case "prompt":
		runPrompt(log)
	case "sessions":
		runSessions(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("ZenvestAI CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  normalize  Build the canonical dataset for a user and print it as JSON")
	fmt.Println("  analyze    Print the analysis summary for a user or a dataset file")
	fmt.Println("  prompt     Print the mentor system prompt for a user or a dataset file")
	fmt.Println("  sessions   List a user's recent mentor sessions")
	fmt.Println("  help       Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func runNormalize(log zerolog.Logger) {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	userID := fs.String("user", "", "User ID to normalize")
	asOf := fs.String("as-of", "", "Transaction window end date (YYYY-MM-DD, default today)")
	project := fs.String("project", os.Getenv("BIGQUERY_PROJECT_ID"), "GCP project for BigQuery")
	dataset := fs.String("dataset", os.Getenv("BIGQUERY_DATASET"), "BigQuery dataset name")
	fs.Parse(os.Args[2:])

	if *userID == "" {
		log.Fatal().Msg("Error: --user is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ds := buildDataset(ctx, log, *userID, *asOf, *project, *dataset)
	printJSON(log, ds)
}

func runAnalyze(log zerolog.Logger) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	userID := fs.String("user", "", "User ID to analyze")
	asOf := fs.String("as-of", "", "Transaction window end date (YYYY-MM-DD, default today)")
	file := fs.String("file", "", "Path to a canonical dataset JSON file (instead of --user)")
	project := fs.String("project", os.Getenv("BIGQUERY_PROJECT_ID"), "GCP project for BigQuery")
	dataset := fs.String("dataset", os.Getenv("BIGQUERY_DATASET"), "BigQuery dataset name")
	fs.Parse(os.Args[2:])

	ds := datasetFromFlags(log, *userID, *asOf, *file, *project, *dataset)
	printJSON(log, analyzer.Analyze(ds))
}

func runPrompt(log zerolog.Logger) {
	fs := flag.NewFlagSet("prompt", flag.ExitOnError)
	userID := fs.String("user", "", "User ID to build the prompt for")
	asOf := fs.String("as-of", "", "Transaction window end date (YYYY-MM-DD, default today)")
	file := fs.String("file", "", "Path to a canonical dataset JSON file (instead of --user)")
	project := fs.String("project", os.Getenv("BIGQUERY_PROJECT_ID"), "GCP project for BigQuery")
	dataset := fs.String("dataset", os.Getenv("BIGQUERY_DATASET"), "BigQuery dataset name")
	fs.Parse(os.Args[2:])

	ds := datasetFromFlags(log, *userID, *asOf, *file, *project, *dataset)
	fmt.Println(prompt.BuildMentorPrompt(analyzer.Analyze(ds)))
}

func runSessions(log zerolog.Logger) {
	fs := flag.NewFlagSet("sessions", flag.ExitOnError)
	userID := fs.String("user", "", "User ID to list sessions for")
	limit := fs.Int("limit", 10, "Maximum number of sessions")
	project := fs.String("project", os.Getenv("BIGQUERY_PROJECT_ID"), "GCP project for BigQuery")
	dataset := fs.String("dataset", os.Getenv("BIGQUERY_DATASET"), "BigQuery dataset name")
	fs.Parse(os.Args[2:])

	if *userID == "" {
		log.Fatal().Msg("Error: --user is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store.Configure(*project, *dataset)
	sessions, err := store.ListMentorSessions(ctx, *userID, *limit)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list mentor sessions")
	}

	fmt.Printf("=== Mentor Sessions (%d) ===\n", len(sessions))
	for i, s := range sessions {
		fmt.Printf("\n%d. %s\n", i+1, s.SessionID)
		fmt.Printf("   Created:  %s\n", s.CreatedAt.Format(time.RFC3339))
		fmt.Printf("   Question: %s\n", s.Question)
		fmt.Printf("   Response: %s\n", s.MentorResponse)
	}
	fmt.Println()
}

// datasetFromFlags loads a dataset from a JSON file when --file is given,
// otherwise builds it live for --user.
func datasetFromFlags(log zerolog.Logger, userID, asOf, file, project, dataset string) *fidata.Dataset {
	if file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read dataset file")
		}
		var ds fidata.Dataset
		if err := json.Unmarshal(raw, &ds); err != nil {
			log.Fatal().Err(err).Msg("Failed to parse dataset file")
		}
		return &ds
	}

	if userID == "" {
		log.Fatal().Msg("Error: --user or --file is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	return buildDataset(ctx, log, userID, asOf, project, dataset)
}

func buildDataset(ctx context.Context, log zerolog.Logger, userID, asOf, project, dataset string) *fidata.Dataset {
	store.Configure(project, dataset)
	repo, err := store.NewRepository(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create BigQuery repository")
	}
	defer repo.Close()

	return fidata.NewNormalizer(repo, log).Build(ctx, userID, asOf)
}

func printJSON(log zerolog.Logger, v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal output")
	}
	fmt.Println(string(out))
}
