// Command formflow runs a terminal walkthrough of the sample grant
// application: it prompts for every applicable field, reports validation
// messages and progress as it goes, and prints the canonical submission
// document when the application is complete.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formflow/pkg/export"
	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/locale"
	"github.com/goliatone/go-formflow/pkg/rules"
)

func main() {
	var (
		localeFlag  = flag.String("locale", "en", "Locale for labels and messages (en, cy)")
		answersFlag = flag.String("answers", "", "Optional JSON file of pre-filled answers")
		outputFlag  = flag.String("output", "", "Optional file path for the submission document (stdout when empty)")
		schemaFlag  = flag.Bool("schema", false, "Print the OpenAPI schema of the submission document and exit")
		timeoutFlag = flag.Duration("timeout", 30*time.Second, "Validation and pre-flight timeout")
	)
	flag.Parse()

	loc := locale.Locale(*localeFlag)
	if loc != locale.En && loc != locale.Cy {
		log.Fatalf("unsupported locale %q", *localeFlag)
	}

	sections, err := demoDefinition(noopVerifier)
	if err != nil {
		log.Fatalf("build form definition: %v", err)
	}

	doc := rules.Document{}
	if *answersFlag != "" {
		payload, err := os.ReadFile(*answersFlag)
		if err != nil {
			log.Fatalf("read answers: %v", err)
		}
		if err := json.Unmarshal(payload, &doc); err != nil {
			log.Fatalf("parse answers: %v", err)
		}
	}

	model := form.MustNew(form.Config{
		Locale:    loc,
		Programme: "Awards for All",
		Featured:  []string{"projectName", "totalProjectCosts"},
	}, sections, doc)

	if *schemaFlag {
		schema := export.SubmissionSchema(model, "Grant application submission", "1.0.0")
		payload, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			log.Fatalf("encode schema: %v", err)
		}
		fmt.Println(string(payload))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	w := &wizard{driver: surveyDriver{}, loc: loc}
	answers, err := w.run(model)
	if err != nil {
		if errors.Is(err, ErrAborted) {
			fmt.Println("Application abandoned.")
			os.Exit(1)
		}
		log.Fatalf("wizard: %v", err)
	}

	final := model.WithValues(answers)
	fmt.Println()
	fmt.Print(progressReport(final))

	result := final.Validate(ctx)
	if result.Error {
		fmt.Println("\nYour application has outstanding problems:")
		for _, message := range result.Messages {
			fmt.Printf("  %s: %s\n", message.Field, message.Text)
		}
		os.Exit(1)
	}
	if result.Advisory {
		fmt.Println("\nNote: bank details could not be checked right now; they will be verified after submission.")
	}

	submission, err := final.ForExternalSubmission(ctx)
	if err != nil {
		log.Fatalf("build submission: %v", err)
	}
	payload, err := export.EncodeSubmission(submission)
	if err != nil {
		log.Fatalf("encode submission: %v", err)
	}

	if *outputFlag == "" {
		fmt.Println()
		fmt.Println(string(payload))
		return
	}
	if err := os.WriteFile(*outputFlag, payload, 0o644); err != nil {
		log.Fatalf("write submission: %v", err)
	}
	fmt.Printf("\nSubmission written to %s\n", *outputFlag)
}
