// Command blog inspects and exports the portfolio blog content store.
//
//	blog slugs  [--locale zh]
//	blog list   [--locale zh]
//	blog show   --slug hello-world [--locale zh] [--html]
//	blog check  [--only zh]
//	blog export --out dist/blog [--only en,zh] [--indent] [--watch]
//
// Every subcommand accepts --config portfolio.yaml and reads PORTFOLIO_*
// variables, including ones listed in a .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dianliyang/portfolio"
	"github.com/dianliyang/portfolio/cmd/blog/internal/bootstrap"
	"github.com/dianliyang/portfolio/internal/watch"
)

var moduleBuilder = bootstrap.BuildModule

var stdout io.Writer = os.Stdout

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

type commonFlags struct {
	config        *string
	envFile       *string
	contentDir    *string
	pattern       *string
	defaultLocale *string
	locales       *string
	strict        *bool
	logLevel      *string
	logFormat     *string
}

func bindCommon(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		config:        fs.String("config", "", "Optional YAML config file"),
		envFile:       fs.String("env-file", ".env", "Optional .env file with PORTFOLIO_* variables"),
		contentDir:    fs.String("content-dir", "", "Path to the blog content root (defaults to content/blog)"),
		pattern:       fs.String("pattern", "", "Glob pattern applied when discovering markdown files (defaults to *.md)"),
		defaultLocale: fs.String("default-locale", "", "Locale served from the legacy flat layout (defaults to en)"),
		locales:       fs.String("locales", "", "Comma separated list of locales (defaults to en,zh)"),
		strict:        fs.Bool("strict-slugs", false, "Fail when two files resolve to the same slug"),
		logLevel:      fs.String("log-level", "", "Enable logging at the given level"),
		logFormat:     fs.String("log-format", "", "Use go-logger with the given format (json, console, pretty)"),
	}
}

func (c commonFlags) options(commands bool) bootstrap.Options {
	return bootstrap.Options{
		ConfigPath:    *c.config,
		EnvFile:       *c.envFile,
		ContentDir:    *c.contentDir,
		Pattern:       *c.pattern,
		DefaultLocale: *c.defaultLocale,
		Locales:       bootstrap.SplitLocales(*c.locales),
		StrictSlugs:   *c.strict,
		LogLevel:      *c.logLevel,
		LogFormat:     *c.logFormat,
		Commands:      commands,
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: blog <slugs|list|show|check|export> [flags]")
	}

	ctx := context.Background()
	switch args[0] {
	case "slugs":
		return runSlugs(ctx, args[1:])
	case "list":
		return runList(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	case "check":
		return runCheck(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runSlugs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("slugs", flag.ContinueOnError)
	common := bindCommon(fs)
	locale := fs.String("locale", "", "Locale to list (defaults to the default locale)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(common.options(false))
	if err != nil {
		return err
	}
	slugs, err := module.Posts().ListSlugs(ctx, *locale)
	if err != nil {
		return err
	}
	for _, slug := range slugs {
		fmt.Fprintln(stdout, slug)
	}
	return nil
}

func runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	common := bindCommon(fs)
	locale := fs.String("locale", "", "Locale to list (defaults to the default locale)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(common.options(false))
	if err != nil {
		return err
	}
	posts, err := module.Posts().ListAllPosts(ctx, *locale)
	if err != nil {
		return err
	}
	for _, post := range posts {
		fmt.Fprintf(stdout, "%s\t%s\t%s\n", post.CreatedAt, post.Slug, post.Title)
	}
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	common := bindCommon(fs)
	locale := fs.String("locale", "", "Locale of the post (defaults to the default locale)")
	slug := fs.String("slug", "", "Slug of the post to show")
	htmlOnly := fs.Bool("html", false, "Print only the rendered HTML body")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *slug == "" {
		return errors.New("--slug is required")
	}

	module, err := moduleBuilder(common.options(false))
	if err != nil {
		return err
	}
	post, err := module.Posts().GetPost(ctx, *slug, *locale)
	if err != nil {
		return fmt.Errorf("%s: %w", portfolio.KindOf(err), err)
	}

	if *htmlOnly {
		_, err = io.WriteString(stdout, post.Content)
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(post)
}

func runCheck(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	common := bindCommon(fs)
	only := fs.String("only", "", "Comma separated subset of locales to check")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(common.options(true))
	if err != nil {
		return err
	}
	handlers := module.Commands()
	if handlers == nil || handlers.Check == nil {
		return errors.New("check handler not configured")
	}
	if err := handlers.Check.Execute(ctx, portfolio.CheckContentCommand{Locales: bootstrap.SplitLocales(*only)}); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "ok")
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	common := bindCommon(fs)
	out := fs.String("out", "", "Directory receiving <locale>/index.json and <locale>/<slug>.json")
	only := fs.String("only", "", "Comma separated subset of locales to export")
	indent := fs.Bool("indent", false, "Pretty-print the JSON output")
	watchMode := fs.Bool("watch", false, "Re-run the export whenever content changes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := common.options(true)
	opts.ModuleOptions = append(opts.ModuleOptions, portfolio.WithExportObserver(func(result portfolio.ExportResult) {
		for _, locale := range result.Locales {
			fmt.Fprintf(stdout, "%s\t%d posts\t%s\n", locale.Locale, locale.Posts, locale.Dir)
			for _, skipped := range locale.Skipped {
				fmt.Fprintf(stdout, "%s\tskipped %s (empty slug)\n", locale.Locale, skipped)
			}
			for _, removed := range locale.Removed {
				fmt.Fprintf(stdout, "%s\tremoved %s\n", locale.Locale, removed)
			}
		}
	}))

	module, err := moduleBuilder(opts)
	if err != nil {
		return err
	}
	handlers := module.Commands()
	if handlers == nil || handlers.Export == nil {
		return errors.New("export handler not configured")
	}
	msg := portfolio.ExportPostsCommand{
		OutputDir: *out,
		Locales:   bootstrap.SplitLocales(*only),
		Indent:    *indent,
	}
	if err := handlers.Export.Execute(ctx, msg); err != nil {
		return err
	}
	if !*watchMode {
		return nil
	}

	cfg := module.Config()
	watcher, err := watch.New(watch.Config{
		Root:    cfg.Content.Dir,
		Pattern: cfg.Content.Pattern,
	}, module.Logger("watch"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Fprintf(stdout, "watching %s\n", cfg.Content.Dir)
	return watcher.Run(ctx, func(ctx context.Context) error {
		return handlers.Export.Execute(ctx, msg)
	})
}
