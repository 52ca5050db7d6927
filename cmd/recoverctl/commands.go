package main

import (
	"bufio"
	"context"
	"fmt"
	"iter"
	"os"
	"strings"

	"github.com/lockstead/recovery/internal/recovery/audit"
	"github.com/lockstead/recovery/internal/recovery/domain"
	"github.com/lockstead/recovery/internal/recovery/service"
	"github.com/lockstead/recovery/internal/recovery/store/drivers/sqlite"
	"github.com/lockstead/recovery/pkg/answerhash"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// openStore opens the SQLite store named by the --database flag and applies
// any pending migrations.
func openStore(cmd *cli.Command) (*sqlite.Store, error) {
	st, err := sqlite.NewStore(cmd.String("database"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return st, nil
}

func runQuestionsList(ctx context.Context, cmd *cli.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := &service.QuestionService{Store: st}
	records, err := svc.ListQuestions(ctx)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("no questions registered")
		return nil
	}

	for i, rec := range records {
		fmt.Printf("%d. %s  (id=%s, scheme=%s)\n", i+1, rec.Question, rec.ID, answerhash.DetectFormat(rec.AnswerHash))
	}
	return nil
}

func runQuestionsSet(ctx context.Context, cmd *cli.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	reader := bufio.NewReader(os.Stdin)
	var entries []domain.QuestionAnswer

	fmt.Println("Enter questions one at a time; empty question finishes the set.")
	for {
		question, err := readLine(reader, fmt.Sprintf("Question %d: ", len(entries)+1))
		if err != nil {
			return err
		}
		if question == "" {
			break
		}

		answer, err := readHidden("Answer (hidden): ")
		if err != nil {
			return err
		}

		entries = append(entries, domain.QuestionAnswer{Question: question, Answer: answer})
	}

	svc := &service.QuestionService{Store: st}
	records, err := svc.RegisterQuestions(ctx, entries)
	if err != nil {
		return err
	}

	fmt.Printf("registered %d questions\n", len(records))
	return nil
}

func runQuestionsReset(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("question id is required")
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	answer, err := readHidden("New answer (hidden): ")
	if err != nil {
		return err
	}

	svc := &service.QuestionService{Store: st}
	if err := svc.ReRegisterAnswer(ctx, id, answer); err != nil {
		return err
	}

	fmt.Println("answer reset with the modern scheme")
	return nil
}

func runQuestionsUpgrade(ctx context.Context, cmd *cli.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := &service.QuestionService{Store: st}
	confirmed, err := promptAnswers(ctx, svc)
	if err != nil {
		return err
	}

	if err := svc.UpgradeToModern(ctx, confirmed); err != nil {
		return err
	}

	fmt.Println("all stored hashes rewritten with the modern scheme")
	return nil
}

func runVerify(ctx context.Context, cmd *cli.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	questions := &service.QuestionService{Store: st}
	pairs, err := promptAnswers(ctx, questions)
	if err != nil {
		return err
	}

	recovery := &service.RecoveryService{Store: st}
	result, err := recovery.VerifyRecovery(ctx, pairs)
	if err != nil {
		return err
	}

	if result.Accepted {
		fmt.Println("ACCEPTED")
		return nil
	}

	fmt.Printf("REJECTED (%d/%d correct)\n", result.Correct, result.Required)
	for _, q := range result.FailedQuestions {
		fmt.Printf("  failed: %s\n", q)
	}
	return nil
}

func runAudit(ctx context.Context, cmd *cli.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := &service.QuestionService{Store: st}
	records, err := svc.ListQuestions(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no questions registered")
	}

	for i, rec := range records {
		fmt.Printf("%d. %s\n", i+1, rec.Question)
	}
	reader := bufio.NewReader(os.Stdin)
	choice, err := readLine(reader, "Audit which question? ")
	if err != nil {
		return err
	}
	var index int
	if _, err := fmt.Sscanf(choice, "%d", &index); err != nil || index < 1 || index > len(records) {
		return fmt.Errorf("invalid selection %q", choice)
	}
	stored := records[index-1].AnswerHash

	var sources []iter.Seq[string]

	if hint := cmd.String("hint"); hint != "" {
		sources = append(sources, audit.CaseVariants(hint))
	}
	if category := cmd.String("dictionary"); category != "" {
		source, ok := audit.BuiltinDictionary(category)
		if !ok {
			return fmt.Errorf("unknown dictionary %q (have: %s)", category, strings.Join(audit.Categories(), ", "))
		}
		sources = append(sources, source)
	}
	if path := cmd.String("wordlist"); path != "" {
		words, err := readWordlist(path)
		if err != nil {
			return err
		}
		sources = append(sources, audit.Dictionary(words))
	}
	if hint := cmd.String("hint"); hint != "" {
		// Typo expansion last: it is by far the largest source.
		sources = append(sources, audit.TypoNeighborhood(strings.ToLower(strings.TrimSpace(hint))))
	}

	if len(sources) == 0 {
		return fmt.Errorf("nothing to try: provide --hint, --dictionary or --wordlist")
	}

	result := audit.Search(stored, int(cmd.Int("max")), sources...)
	if result.Found {
		fmt.Printf("FOUND after %d candidates: %q\n", result.Tried, result.Candidate)
		return nil
	}

	fmt.Printf("no match after %d candidates\n", result.Tried)
	return nil
}

// promptAnswers asks for an answer to every registered question, hidden
// input, and returns the full attempt.
func promptAnswers(ctx context.Context, svc *service.QuestionService) ([]domain.AnswerPair, error) {
	records, err := svc.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no questions registered")
	}

	pairs := make([]domain.AnswerPair, 0, len(records))
	for _, rec := range records {
		answer, err := readHidden(rec.Question + " (hidden): ")
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, domain.AnswerPair{Question: rec.Question, Answer: answer})
	}
	return pairs, nil
}

func readLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readHidden reads a line from the terminal without echo, so answers never
// end up in shell history or on screen.
func readHidden(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func readWordlist(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	var words []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			words = append(words, line)
		}
	}
	return words, nil
}
