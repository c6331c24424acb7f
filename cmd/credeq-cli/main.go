// Command credeq-cli runs one credit-equivalence analysis from the
// command line. It uses the lexical TF-IDF scorer by default so it
// works fully offline; pointing it at a model server enables the
// embedding scorer and the generative extraction fallback.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/credeq/credeq/internal/adapters/cache"
	"github.com/credeq/credeq/internal/adapters/model"
	service "github.com/credeq/credeq/internal/app"
	"github.com/credeq/credeq/internal/domain/decision"
	"github.com/credeq/credeq/internal/domain/extract"
	"github.com/credeq/credeq/internal/domain/similarity"
	"github.com/credeq/credeq/pkg/logger"
)

var (
	appType        = flag.String("type", decision.TypeCreditTransfer, "Application type: 'credit transfer' or 'credit exemption'")
	subjectName    = flag.String("subject", "", "Subject name to analyze")
	subjectAliases = flag.String("aliases", "", "Comma-separated subject aliases (defaults to the subject name)")
	applicantFiles = flag.String("applicant", "", "Comma-separated applicant text files (syllabus and transcript)")
	sunwayFiles    = flag.String("sunway", "", "Comma-separated institution text files (target syllabus)")
	modelURL       = flag.String("model-url", "", "Ollama API URL; empty keeps the analysis fully offline")
	embedModel     = flag.String("embed-model", "all-minilm", "Embedding model name")
	generateModel  = flag.String("generate-model", "flan-t5", "Generative model name")
)

func main() {
	flag.Parse()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	_ = logger.SetLevelString("warn")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	req := service.AnalyzeRequest{
		Type:           *appType,
		SubjectName:    *subjectName,
		SubjectAliases: splitList(*subjectAliases),
		ApplicantFiles: splitList(*applicantFiles),
		SunwayFiles:    splitList(*sunwayFiles),
	}

	svc := buildService()
	if err := svc.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start pipeline: %v\n", err)
		os.Exit(1)
	}
	defer svc.Stop()

	res, err := svc.Analyze(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}

	printResult(res)
	if res.Verdict != decision.Approve {
		os.Exit(2)
	}
}

// buildService assembles the pipeline. Without a model URL the scorer
// is lexical and extraction has no generative fallback.
func buildService() *service.Service {
	opts := []service.Option{}

	if *modelURL == "" {
		opts = append(opts, service.WithScorer(similarity.NewTFIDFScorer()))
	} else {
		client := model.NewClient(*embedModel, *generateModel,
			model.WithBaseURL(*modelURL),
			model.WithTimeout(60*time.Second),
		)
		opts = append(opts,
			service.WithScorer(similarity.NewEmbeddingScorer(cache.New(client))),
			service.WithExtractor(extract.New(extract.WithGenerator(client))),
		)
	}

	return service.New(opts...)
}

func printResult(res *service.AnalysisResult) {
	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldRed := color.New(color.FgRed, color.Bold).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	verdict := boldGreen(strings.ToUpper(string(res.Verdict)))
	if res.Verdict != decision.Approve {
		verdict = boldRed(strings.ToUpper(string(res.Verdict)))
	}

	r := res.Reasoning
	fmt.Printf("%s  %s (%s)\n", verdict, bold(r.Subject), res.Type)
	fmt.Printf("  similarity:   %.2f%%  %s\n", r.SimilarityPercent, checkmark(r.SimilarityOK))
	fmt.Printf("  grade:        %s  %s\n", orNone(r.DetectedGrade), checkmark(r.GradeOK))
	if r.DetectedCreditHours != nil {
		fmt.Printf("  credit hours: %d  %s\n", *r.DetectedCreditHours, checkmark(r.CreditOK))
	} else {
		fmt.Printf("  credit hours: none  %s\n", checkmark(r.CreditOK))
	}
	if res.SuggestedEquivalentGrade != nil {
		fmt.Printf("  suggested equivalent grade: %s\n", bold(*res.SuggestedEquivalentGrade))
	}
}

func checkmark(ok bool) string {
	if ok {
		return color.GreenString("ok")
	}
	return color.RedString("fail")
}

func orNone(s *string) string {
	if s == nil {
		return "none"
	}
	return *s
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
