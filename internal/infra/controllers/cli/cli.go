// Package cli is the command line / workflow entry point: it wires
// environment-provided inputs (event payload, repository, credentials) to the
// application service and its adapters.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fabien-marty/slog-helpers/pkg/slogc"
	"github.com/urfave/cli/v2"

	"github.com/changelog-ci/changelog-ci/internal/app"
	"github.com/changelog-ci/changelog-ci/internal/app/config"
	"github.com/changelog-ci/changelog-ci/internal/app/git"
	"github.com/changelog-ci/changelog-ci/internal/app/repo"
	gitgogit "github.com/changelog-ci/changelog-ci/internal/infra/adapters/git/gogit"
	repocache "github.com/changelog-ci/changelog-ci/internal/infra/adapters/repo/cache"
	repogithub "github.com/changelog-ci/changelog-ci/internal/infra/adapters/repo/github"
)

var cliFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "log-level",
		Value:   "INFO",
		Usage:   "log level (DEBUG, INFO, WARN, ERROR)",
		EnvVars: []string{"LOG_LEVEL"},
	},
	&cli.StringFlag{
		Name:    "log-format",
		Value:   "text-human",
		Usage:   "log format (text-human, text, json, json-gcp, github-actions)",
		EnvVars: []string{"LOG_FORMAT"},
	},
	&cli.StringFlag{
		Name:     "repository",
		Required: true,
		Usage:    "repository identifier (owner/name)",
		EnvVars:  []string{"GITHUB_REPOSITORY"},
	},
	&cli.StringFlag{
		Name:     "event-path",
		Required: true,
		Usage:    "path of the JSON webhook event payload",
		EnvVars:  []string{"GITHUB_EVENT_PATH"},
	},
	&cli.StringFlag{
		Name:    "branch",
		Value:   "main",
		Usage:   "branch to commit the changelog on",
		EnvVars: []string{"GITHUB_HEAD_REF"},
	},
	&cli.StringFlag{
		Name:    "github-token",
		Usage:   "github token (push credentials and comment API)",
		EnvVars: []string{"GITHUB_TOKEN"},
	},
	&cli.StringFlag{
		Name:    "changelog-filename",
		Value:   "CHANGELOG.md",
		Usage:   "changelog file path (relative to the working tree root)",
		EnvVars: []string{"INPUT_CHANGELOG_FILENAME"},
	},
	&cli.StringFlag{
		Name:    "config-file",
		Usage:   "path of the JSON configuration file",
		EnvVars: []string{"INPUT_CONFIG_FILE"},
	},
	&cli.StringFlag{
		Name:    "committer-username",
		Value:   "github-actions[bot]",
		Usage:   "committer user name",
		EnvVars: []string{"INPUT_COMMITTER_USERNAME"},
	},
	&cli.StringFlag{
		Name:    "committer-email",
		Value:   "github-actions[bot]@users.noreply.github.com",
		Usage:   "committer email address",
		EnvVars: []string{"INPUT_COMMITTER_EMAIL"},
	},
	&cli.StringFlag{
		Name:  "git-repository-local-path",
		Value: ".",
		Usage: "git repository local path",
	},
	&cli.StringFlag{
		Name:  "remote-name",
		Value: "origin",
		Usage: "name of the git remote to push to",
	},
	&cli.StringFlag{
		Name:    "template-path",
		Usage:   "if set, define the path to the changelog template",
		EnvVars: []string{"CHANGELOG_CI_TEMPLATE_PATH"},
	},
	&cli.StringFlag{
		Name:    "cache-location",
		Usage:   "if set, cache the API results in this directory",
		EnvVars: []string{"CHANGELOG_CI_CACHE_LOCATION"},
	},
	&cli.IntFlag{
		Name:    "cache-lifetime",
		Value:   3600,
		Usage:   "lifetime of the cached API results (in seconds)",
		EnvVars: []string{"CHANGELOG_CI_CACHE_LIFETIME"},
	},
}

func setDefaultLogger(cCtx *cli.Context) {
	level := slogc.GetLogLevelFromString(cCtx.String("log-level"))
	if cCtx.String("log-format") == "github-actions" {
		slog.SetDefault(slog.New(newAnnotationHandler(os.Stdout, level)))
		return
	}
	logger := slogc.GetLogger(
		slogc.WithLevel(level),
		slogc.WithLogFormat(slogc.GetLogFormatFromString(cCtx.String("log-format"))),
	)
	slog.SetDefault(logger)
}

func splitRepository(repository string) (owner string, name string, err error) {
	tmp := strings.SplitN(repository, "/", 2)
	if len(tmp) != 2 || tmp[0] == "" || tmp[1] == "" {
		return "", "", fmt.Errorf("bad repository identifier %s (expected owner/name)", repository)
	}
	return tmp[0], tmp[1], nil
}

func getTemplateString(cCtx *cli.Context) (string, error) {
	if cCtx.String("template-path") == "" {
		return "", nil
	}
	templateStringBytes, err := os.ReadFile(cCtx.String("template-path"))
	if err != nil {
		return "", fmt.Errorf("can't read the changelog template file: %w", err)
	}
	return string(templateStringBytes), nil
}

func action(cCtx *cli.Context) error {
	setDefaultLogger(cCtx)
	owner, name, err := splitRepository(cCtx.String("repository"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	title, number, err := readEventPayload(cCtx.String("event-path"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	templateString, err := getTemplateString(cCtx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	cfg := config.Load(cCtx.String("config-file"))
	var repoAdapter repo.Port = repogithub.NewAdapter(owner, name, repogithub.AdapterOptions{
		Token: cCtx.String("github-token"),
	})
	if cCtx.String("cache-location") != "" {
		repoAdapter = repocache.NewAdapter(owner, name, repoAdapter, repocache.AdapterOptions{
			CacheLocation: cCtx.String("cache-location"),
			CacheLifetime: cCtx.Int("cache-lifetime"),
		})
	}
	service := app.NewService(cfg, repoAdapter, gitgogit.NewAdapter())
	err = service.Run(app.Input{
		Title:             title,
		PullRequestNumber: number,
		ChangelogFilename: cCtx.String("changelog-filename"),
		TemplateString:    templateString,
		RepositoryContext: git.RepositoryContext{
			Root:           cCtx.String("git-repository-local-path"),
			Branch:         cCtx.String("branch"),
			RemoteName:     cCtx.String("remote-name"),
			CommitterName:  cCtx.String("committer-username"),
			CommitterEmail: cCtx.String("committer-email"),
			Token:          cCtx.String("github-token"),
		},
	})
	if err != nil {
		// abort paths report a message and return: the surrounding
		// automation decides success/failure from the output stream
		if errors.Is(err, app.ErrNoPullRequests) {
			slog.Warn(err.Error())
		} else {
			slog.Error(err.Error())
		}
	}
	return nil
}

func Main() {
	app := &cli.App{
		Name:   "changelog-ci",
		Usage:  "Assemble a changelog from the PRs merged between two tags and commit and/or comment it",
		Action: action,
		Flags:  cliFlags,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "bad CLI arguments: %s\n", err.Error())
		os.Exit(1)
	}
}
