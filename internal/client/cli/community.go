package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/genzclient/internal/client/api"
	"github.com/dmitrijs2005/genzclient/internal/client/community"
)

// Feed loads the community feed. Arguments are key=value filters with keys
// persona, tag and visibility; "key=" sends an empty filter value.
func (a *App) Feed(ctx context.Context, args []string) error {
	filter, err := parseFilter(args)
	if err != nil {
		return err
	}
	vibes, err := a.feed.Fetch(ctx, filter)
	if err != nil {
		return errors.New(a.feed.Err())
	}
	if len(vibes) == 0 {
		fmt.Fprintln(a.out, "The feed is quiet")
		return nil
	}
	for _, v := range vibes {
		printVibe(a.out, v)
	}
	return nil
}

func parseFilter(args []string) (api.VibeFilter, error) {
	var f api.VibeFilter
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return f, fmt.Errorf("bad filter %q, expected key=value", arg)
		}
		v := value
		switch strings.ToLower(key) {
		case "persona":
			f.Persona = &v
		case "tag":
			f.Tag = &v
		case "visibility":
			f.Visibility = &v
		default:
			return f, fmt.Errorf("unknown filter %q", key)
		}
	}
	return f, nil
}

// Share translates a line of slang and publishes it with optional insight,
// tags and visibility.
func (a *App) Share(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	text, err := getSimpleText(a.reader, "What did they say?", a.out)
	if err != nil {
		return err
	}
	res, err := a.translator.Translate(ctx, text)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "→", res.Translated)

	insight, err := getSimpleText(a.reader, "Insight (optional)", a.out)
	if err != nil {
		return err
	}
	tags, err := getSimpleText(a.reader, "Tags, comma separated (optional)", a.out)
	if err != nil {
		return err
	}
	vis, err := getSimpleText(a.reader, "Visibility: public, following or private (blank for public)", a.out)
	if err != nil {
		return err
	}

	req := api.VibeRequest{
		OriginalText:   res.Original,
		TranslatedText: res.Translated,
		Insight:        insight,
		Tags:           community.ParseTags(tags),
		Visibility:     api.VisibilityPublic,
	}
	if vis != "" {
		v, ok := api.ParseVisibility(vis)
		if !ok {
			return fmt.Errorf("unknown visibility %q", vis)
		}
		req.Visibility = v
	}

	v, err := a.feed.Share(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Shared vibe #%d\n", v.ID)
	return nil
}

func (a *App) Pulse(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if len(args) != 2 {
		return errors.New("usage: pulse <id> <mindbend|chill|hype|sage|cosmic>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	kind, ok := api.ParsePulseKind(args[1])
	if !ok {
		return fmt.Errorf("unknown pulse %q", args[1])
	}

	v, err := a.feed.Pulse(ctx, id, kind)
	if err != nil {
		return err
	}
	printVibe(a.out, *v)
	return nil
}

func (a *App) Remix(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if len(args) != 1 {
		return errors.New("usage: remix <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	text, err := getSimpleText(a.reader, "Your remix", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		return errors.New("remix text cannot be empty")
	}

	v, err := a.feed.Remix(ctx, id, text)
	if err != nil {
		return err
	}
	printVibe(a.out, *v)
	return nil
}

func (a *App) Remixes(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: remixes <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	remixes, err := a.feed.Remixes(ctx, id)
	if err != nil {
		return err
	}
	if len(remixes) == 0 {
		fmt.Fprintln(a.out, "No remixes yet")
		return nil
	}
	for _, r := range remixes {
		fmt.Fprintf(a.out, "@%s: %s\n", r.Handle, r.RemixText)
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("bad vibe id %q", s)
	}
	return id, nil
}

func printVibe(w io.Writer, v api.Vibe) {
	fmt.Fprintf(w, "#%d @%s (%s) [%s]\n", v.ID, v.Handle, v.PersonaTag, strings.ToLower(string(v.Visibility)))
	fmt.Fprintf(w, "  %q → %s\n", v.OriginalText, v.TranslatedText)
	if v.Insight != "" {
		fmt.Fprintf(w, "  %s\n", v.Insight)
	}
	if len(v.Tags) > 0 {
		fmt.Fprintf(w, "  #%s\n", strings.Join(v.Tags, " #"))
	}

	pulses := []string{}
	for _, k := range api.PulseKinds() {
		if n := v.Pulses[k]; n > 0 {
			pulses = append(pulses, fmt.Sprintf("%s %d", k.Label(), n))
		}
	}
	if v.RemixCount > 0 {
		pulses = append(pulses, fmt.Sprintf("%d remixes", v.RemixCount))
	}
	if len(pulses) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(pulses, " · "))
	}
}
