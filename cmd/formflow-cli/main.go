package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/storage"
)

const usage = `usage: formflow-cli <command> [flags]

commands:
  import   convert an OpenAPI operation into a form schema
  lint     report schema problems
  render   render a schema to HTML
  fill     fill a form interactively and store the result
  list     show stored forms and their submissions
`

type config struct {
	Store   string `env:"FORMFLOW_STORE"    envDefault:"file"`
	DataDir string `env:"FORMFLOW_DATA_DIR" envDefault:".formflow"`
	DBPath  string `env:"FORMFLOW_DB_PATH"  envDefault:".formflow/formflow.db"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse environment: %v", err)
	}

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "import":
		err = runImport(ctx, os.Args[2:])
	case "lint":
		err = runLint(os.Args[2:])
	case "render":
		err = runRender(ctx, cfg, os.Args[2:])
	case "fill":
		err = runFill(ctx, cfg, os.Args[2:])
	case "list":
		err = runList(cfg, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func runImport(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("import", flag.ExitOnError)
	source := flags.String("source", "", "OpenAPI document path")
	operation := flags.String("operation", "", "operation id to import")
	output := flags.String("output", "", "output file (stdout if empty)")
	_ = flags.Parse(args)

	data, err := os.ReadFile(*source)
	if err != nil {
		return err
	}
	form, err := openapi.New(openapi.Options{}).Import(ctx, data, *operation)
	if err != nil {
		return err
	}
	encoded, err := schema.EncodeSchema(form)
	if err != nil {
		return err
	}
	return writeOutput(*output, encoded)
}

func runLint(args []string) error {
	flags := flag.NewFlagSet("lint", flag.ExitOnError)
	path := flags.String("schema", "", "schema file (json or yaml)")
	_ = flags.Parse(args)

	form, err := loadSchema(*path)
	if err != nil {
		return err
	}
	problems := schema.Lint(form)
	if len(problems) == 0 {
		fmt.Println("no problems found")
		return nil
	}
	for _, problem := range problems {
		fmt.Println(problem)
	}
	return fmt.Errorf("%d problem(s)", len(problems))
}

func runRender(ctx context.Context, cfg config, args []string) error {
	flags := flag.NewFlagSet("render", flag.ExitOnError)
	path := flags.String("schema", "", "schema file; takes priority over -form")
	formID := flags.String("form", "", "stored form id")
	renderer := flags.String("renderer", "", "renderer name")
	output := flags.String("output", "", "output file (stdout if empty)")
	_ = flags.Parse(args)

	engine, cleanup, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	id := *formID
	if *path != "" {
		form, err := loadSchema(*path)
		if err != nil {
			return err
		}
		engine.SaveForm(form)
		id = form.ID
	}

	markup, err := engine.RenderForm(ctx, id, *renderer, render.RenderOptions{
		DraftLabel: "Save draft",
	})
	if err != nil {
		return err
	}
	return writeOutput(*output, markup)
}

func runFill(ctx context.Context, cfg config, args []string) error {
	flags := flag.NewFlagSet("fill", flag.ExitOnError)
	path := flags.String("schema", "", "schema file; takes priority over -form")
	formID := flags.String("form", "", "stored form id")
	resume := flags.String("resume", "", "draft or submission id to resume")
	_ = flags.Parse(args)

	engine, cleanup, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	id := *formID
	if *path != "" {
		form, err := loadSchema(*path)
		if err != nil {
			return err
		}
		engine.SaveForm(form)
		id = form.ID
	}

	return fillSession(ctx, engine, id, *resume)
}

func fillSession(ctx context.Context, engine *formflow.Engine, formID, resume string) error {
	var (
		ctrl       *session.Controller
		form       schema.FormSchema
		err        error
		allowDraft = true
	)
	if resume != "" {
		sub, ok := engine.Submissions().GetSubmissionByID(resume)
		if !ok {
			return fmt.Errorf("submission %q not found", resume)
		}
		if form, err = engine.Form(sub.FormID); err != nil {
			return err
		}
		if ctrl, err = engine.EditSession(resume); err != nil {
			return err
		}
		// Submitted records only update in place; there is no draft to save.
		allowDraft = sub.Status != schema.StatusSubmitted
	} else {
		if form, err = engine.Form(formID); err != nil {
			return err
		}
		if ctrl, err = engine.NewSession(formID, nil); err != nil {
			return err
		}
	}

	action, err := tui.New(tui.WithDraftSaving(allowDraft)).Fill(ctx, ctrl, form)
	if err != nil {
		return err
	}
	fmt.Printf("session ended: %s\n", action)
	return nil
}

func runList(cfg config, args []string) error {
	flags := flag.NewFlagSet("list", flag.ExitOnError)
	_ = flags.Parse(args)

	engine, cleanup, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, form := range engine.Forms().List() {
		fmt.Printf("%s  %s (v%s)\n", form.ID, form.Title, form.Version)
		for _, sub := range engine.Submissions().GetSubmissionsByFormID(form.ID) {
			fmt.Printf("  %s  [%s]  %s\n", sub.ID, sub.Status, sub.SubmittedAt.Format("2006-01-02 15:04"))
		}
	}
	return nil
}

func openEngine(cfg config) (*formflow.Engine, func(), error) {
	medium, closeMedium, err := openMedium(cfg)
	if err != nil {
		return nil, nil, err
	}
	engine := formflow.New(formflow.WithMedium(medium))
	cleanup := func() {
		engine.Close()
		closeMedium()
	}
	return engine, cleanup, nil
}

func openMedium(cfg config) (storage.Medium, func(), error) {
	switch cfg.Store {
	case "memory":
		return storage.NewMemory(), func() {}, nil
	case "sqlite":
		db, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	case "file":
		medium, err := storage.NewFile(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return medium, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (memory, file, sqlite)", cfg.Store)
	}
}

func loadSchema(path string) (schema.FormSchema, error) {
	if path == "" {
		return schema.FormSchema{}, fmt.Errorf("schema path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.FormSchema{}, err
	}
	return schema.ParseSchema(data)
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("written to %s\n", path)
	return nil
}
