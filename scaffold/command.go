package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/pkg/browser"
	"go.uber.org/zap"

	"github.com/ghusk/ghusk/config"
	"github.com/ghusk/ghusk/gitcmd"
	"github.com/ghusk/ghusk/github"
	"github.com/ghusk/ghusk/logging"
	"github.com/ghusk/ghusk/pipenv"
	"github.com/ghusk/ghusk/project"
	"github.com/ghusk/ghusk/prompt"
	"github.com/ghusk/ghusk/subproc"
	"github.com/ghusk/ghusk/token"
	"github.com/ghusk/ghusk/version"
)

type (
	// Cmd runs the whole scaffolding sequence: local files, virtual
	// environment, editor settings, local repository, remote repository.
	Cmd struct {
		Folder      string `name:"folder" short:"f" help:"Local project folder (current directory by default)."`
		Name        string `name:"name" short:"n" help:"Name for the remote repository."`
		Description string `name:"description" short:"d" help:"Description for the remote repository."`
		License     string `name:"license" short:"l" help:"License to use for the project."`
		Open        bool   `name:"open" help:"Open the new repository page in the default browser when done."`
		Verbose     bool   `name:"verbose" short:"v" help:"Set logging level to DEBUG."`

		Version kong.VersionFlag `short:"V" help:"Print version and quit."`

		Dirs   config.Dirs    `kong:"-"`
		Runner subproc.Runner `kong:"-"`
		Asker  project.Asker  `kong:"-"`
		Stdout io.Writer      `kong:"-"`
		Logger *zap.Logger    `kong:"-"`
		APIURL string         `kong:"-"`
	}
)

// ErrCancelled reports that the user declined the pre-flight summary.
var ErrCancelled = errors.New("cancelled by the user")

func (c *Cmd) AfterApply() (err error) {
	if c.Runner == nil {
		c.Runner = subproc.NewExecRunner()
	}

	if c.Asker == nil {
		c.Asker = prompt.New()
	}

	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}

	if c.APIURL == "" {
		c.APIURL = github.DefaultAPIURL
	}

	if c.Dirs.Program == "" {
		c.Dirs, err = config.DefaultDirs()
	}

	return err
}

func (c *Cmd) printf(format string, v ...any) {
	_, _ = fmt.Fprintf(c.Stdout, format, v...)
}

// preflight verifies the program was configured before anything runs.
func (c *Cmd) preflight() (*config.UserConfig, error) {
	if _, err := os.Stat(c.Dirs.Templates); err != nil {
		c.printf("Error: directory `%s` doesn't exist.\n", c.Dirs.Templates)
		c.printf("\nBefore using the program, please take some time to read the documentation and configure the needed files.\n")

		return nil, fmt.Errorf("template directory %q is not available: %w", c.Dirs.Templates, err)
	}

	cfg, err := config.Load(c.Dirs.ConfigFile())
	if err != nil {
		c.printf("Error: the program configuration is incomplete (%s).\n", err)
		c.printf("\nBefore using the program, please take some time to read the documentation and configure the needed files.\n")

		return nil, err
	}

	return cfg, nil
}

func (c *Cmd) Run() error {
	cfg, err := c.preflight()
	if err != nil {
		return err
	}

	logFile := c.Dirs.LogFile(time.Now())

	logger := c.Logger
	if logger == nil {
		if logger, err = logging.NewRun(logFile, c.Verbose); err != nil {
			return err
		}

		defer func() { _ = logger.Sync() }()
	}

	ctx := context.Background()

	materializer := NewMaterializer(c.Dirs.Templates, c.Stdout, logger)

	licenses, err := materializer.AvailableLicenses()
	if err != nil {
		logger.Error(err.Error())

		return err
	}

	resolver := project.NewResolver(c.Asker, licenses, logger)

	req, err := resolver.Resolve(project.Flags{
		Folder:      c.Folder,
		Name:        c.Name,
		Description: c.Description,
		License:     c.License,
	})
	if err != nil {
		logger.Error(err.Error())

		return err
	}

	c.printf("\n%s", prompt.Summary([][2]string{
		{"Repository name", req.Name},
		{"Repository description", req.Description},
		{"Project license", req.License},
		{"Project folder", req.Folder},
	}))

	empty, err := project.EmptyFolder(req.Folder)
	if err != nil {
		logger.Error(err.Error())

		return err
	}

	if !empty {
		c.printf("\n   *** WARNING: project folder is not empty!! ***\n")
		c.printf("Make sure there is no confidential information inside\n")
	}

	approved, err := c.Asker.Confirm("\nIs this info correct?")
	if err != nil {
		return err
	}

	if !approved {
		logger.Info("program cancelled by the user")
		c.printf("\nCancelling...\n")

		return ErrCancelled
	}

	c.printf("\nStarting...\n\n")

	if err = c.materialize(materializer, cfg, req); err != nil {
		logger.Error(err.Error())

		return err
	}

	if err = c.provision(ctx, materializer, cfg, req, logger); err != nil {
		logger.Error(err.Error())

		return err
	}

	git := gitcmd.New(c.Runner, req.Folder, logger)

	if err = c.commitLocal(ctx, git); err != nil {
		logger.Error(err.Error())

		return err
	}

	client, err := c.authenticate(cfg.Username, logger)
	if err != nil {
		logger.Error(err.Error())

		return err
	}

	fullName, err := c.publish(ctx, git, client, req)
	if err != nil {
		logger.Error(err.Error())

		return err
	}

	// Pages enablement and the blog rebuild are best-effort: log and move on.
	if cfg.EnableGHPages {
		if err = client.EnablePages(ctx, fullName); err != nil {
			logger.Warn("pages enablement failed", zap.Error(err))
			c.printf("\nWarning: %s\n", err)
		} else {
			c.printf("\nGitHub pages enabled in %s.\n", fullName)
		}

		if err = client.RequestPagesBuild(ctx, cfg.Username); err != nil {
			logger.Warn("blog pages rebuild failed", zap.Error(err))
			c.printf("Warning: %s\n", err)
		} else {
			c.printf("Personal blog `%s.github.io` pages rebuilt.\n", cfg.Username)
		}
	}

	repoURL := "https://github.com/" + fullName

	c.printf("\nWork successfully finished!\n")
	c.printf(" - Check the log file at `%s`\n", logFile)
	c.printf(" - Check the project files at `%s`\n", req.Folder)
	c.printf(" - Check the remote repository at `%s`\n", repoURL)

	if c.Open {
		if err = browser.OpenURL(repoURL); err != nil {
			logger.Warn("failed to open the repository page", zap.Error(err))
		}
	}

	return nil
}

func (c *Cmd) materialize(materializer *Materializer, cfg *config.UserConfig, req project.Request) error {
	if err := materializer.BuildReadme(req.Folder, req, cfg.ReadmeContent); err != nil {
		return err
	}

	if err := materializer.CopyTemplates(req.Folder, req.License, cfg.EnableGHPages); err != nil {
		return err
	}

	if cfg.EnableGHPages {
		if err := materializer.BuildPages(req.Folder, req.Description, cfg.JekyllConfig); err != nil {
			return err
		}
	}

	return nil
}

func (c *Cmd) provision(ctx context.Context, materializer *Materializer, cfg *config.UserConfig, req project.Request, logger *zap.Logger) error {
	tool := pipenv.New(c.Runner, logger)

	c.printf("\nThis can take a while...\n")

	if err := tool.CreateEnvironment(ctx, req.Folder, cfg.PythonVersion); err != nil {
		return err
	}

	c.printf("Python %s virtual environment created.\n", cfg.PythonVersion)

	c.printf("\nThis can take a while...\n")

	if err := tool.InstallLinter(ctx, req.Folder, cfg.Linter); err != nil {
		return err
	}

	c.printf("`%s` linter installed.\n", cfg.Linter)

	found, err := tool.VerifyDevPackage(req.Folder, cfg.Linter)
	if err != nil || !found {
		logger.Warn("linter not confirmed in Pipfile dev-packages", zap.String("linter", cfg.Linter), zap.Error(err))
	}

	interpreter, err := tool.InterpreterPath(ctx, req.Folder)
	if err != nil {
		return err
	}

	return materializer.WriteVSCodeSettings(req.Folder, cfg.Linter, interpreter)
}

func (c *Cmd) commitLocal(ctx context.Context, git *gitcmd.Git) error {
	c.printf("\nInitialising git...\n")

	message, err := git.Init(ctx)
	if err != nil {
		return err
	}

	c.printf("%s\n", message)

	c.printf("\nStaging files...\n")

	if err = git.StageAll(ctx); err != nil {
		return err
	}

	c.printf("All not ignored files in project directory have been staged.\n")

	c.printf("\nCommiting files...\n")

	if err = git.Commit(ctx, "initial commit", fmt.Sprintf("by `%s`", version.Signature())); err != nil {
		return err
	}

	c.printf("Local commit completed.\n")

	return nil
}

// authenticate resolves a credential: stored token first, interactive
// password as the fallback. The credential only ever lives in memory.
func (c *Cmd) authenticate(username string, logger *zap.Logger) (*github.Client, error) {
	store := token.NewStore(c.APIURL, username)

	secret, err := store.Get()
	if err == nil {
		logger.Debug("OAuth token retrieved from the system credential store")

		return github.NewTokenClient(c.APIURL, username, secret, logger), nil
	}

	if errors.Is(err, token.ErrNotFound) {
		logger.Debug("no stored token, asking for credentials")
	} else {
		logger.Warn("credential store lookup failed", zap.Error(err))
	}

	password, err := c.Asker.Secret("\nPlease enter your GitHub password")
	if err != nil {
		return nil, err
	}

	return github.NewBasicClient(c.APIURL, username, password, logger), nil
}

func (c *Cmd) publish(ctx context.Context, git *gitcmd.Git, client *github.Client, req project.Request) (string, error) {
	c.printf("\nConnecting to GitHub...\n")

	fullName, err := client.CreateRepository(ctx, req.Name, req.Description)
	if err != nil {
		return "", err
	}

	c.printf("Remote repository %s created.\n", fullName)

	if err = git.AddOrigin(ctx, "https://github.com/"+fullName+".git"); err != nil {
		return "", err
	}

	c.printf("\nUpdating remote repository...\n")

	if err = git.Push(ctx); err != nil {
		return "", err
	}

	c.printf("Push to remote repository completed.\n")

	return fullName, nil
}
