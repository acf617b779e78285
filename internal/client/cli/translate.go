package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/genzclient/internal/client/api"
)

func (a *App) Translate(ctx context.Context, text string) error {
	res, err := a.translator.Translate(ctx, text)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, res.Translated)
	if len(res.TermsFound) > 0 {
		fmt.Fprintf(a.out, "terms: %s\n", strings.Join(res.TermsFound, ", "))
	}
	if res.Offline {
		fmt.Fprintln(a.out, "(offline dictionary)")
	}
	return nil
}

// History prints the last n translations, 10 by default.
func (a *App) History(ctx context.Context, args []string) error {
	limit := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return errors.New("usage: history [n]")
		}
		limit = n
	}

	entries, err := a.conn.API.Translation.History(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No translations yet")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(a.out, "%q → %s\n", e.OriginalText, e.TranslatedText)
	}
	return nil
}

func (a *App) Terms(ctx context.Context) error {
	terms, err := a.conn.API.Translation.Terms(ctx)
	if err != nil {
		return err
	}
	printTerms(a.out, terms)
	return nil
}

func (a *App) Popular(ctx context.Context) error {
	terms, err := a.conn.API.Translation.PopularTerms(ctx)
	if err != nil {
		return err
	}
	printTerms(a.out, terms)
	return nil
}

func (a *App) Search(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		return errors.New("usage: search <query>")
	}
	terms, err := a.conn.API.Translation.SearchTerms(ctx, query)
	if err != nil {
		return err
	}
	printTerms(a.out, terms)
	return nil
}

func printTerms(w io.Writer, terms []api.Term) {
	if len(terms) == 0 {
		fmt.Fprintln(w, "No terms found")
		return
	}
	for _, t := range terms {
		line := fmt.Sprintf("%-22s %s", t.GenzText, t.Translation)
		if t.Category != "" {
			line += " [" + t.Category + "]"
		}
		fmt.Fprintf(w, "%s (%d)\n", line, t.PopularityScore)
	}
}
