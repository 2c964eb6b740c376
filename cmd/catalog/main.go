package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"coursemanager-backend/internal/config"
	"coursemanager-backend/internal/domains/author/model"
	"coursemanager-backend/pkg/container"
	"coursemanager-backend/pkg/logger"
)

const usage = `usage: catalog [-page N] [-size N] <command> [args]

commands:
  schema                     create the catalog tables if missing
  seed                       insert the reference countries
  countries                  list reference countries
  list                       list one page of authors
  get ID                     show one author
  add FIRST LAST [COUNTRY]   add an author (country defaults to CATALOG_DEFAULT_COUNTRY)
`

func main() {
	// .env is optional; production uses the process environment
	_ = godotenv.Load()

	page := flag.Int("page", 1, "page number, 1-based")
	size := flag.Int("size", 20, "page size")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.IsDevelopment())

	if err := run(cfg, *page, *size, flag.Args()); err != nil {
		log.Error().Err(err).Str("command", flag.Arg(0)).Msg(describe(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, page, size int, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.OperationTimeout)
	defer cancel()

	c, err := container.NewContainerWithConfig(ctx, cfg, logger.New("catalog"))
	if err != nil {
		return err
	}
	defer c.Cleanup()

	svc := c.AuthorService

	switch cmd, rest := args[0], args[1:]; cmd {
	case "schema":
		if err := c.EnsureSchema(ctx); err != nil {
			return err
		}
		fmt.Println("schema ready")

	case "seed":
		rows, err := c.Countries.Seed(ctx, referenceCountries...)
		if err != nil {
			return err
		}
		fmt.Printf("seeded %d countries\n", rows)

	case "countries":
		countries, err := c.Countries.List(ctx)
		if err != nil {
			return err
		}
		for _, country := range countries {
			fmt.Printf("%-3s  %s\n", country.ID, country.Description)
		}

	case "list":
		result, err := svc.ListAuthors(ctx, page, size)
		if err != nil {
			return err
		}
		for _, a := range result.Data {
			printAuthor(a)
		}
		p := result.Pagination
		fmt.Printf("page %d/%d, %d authors\n", p.CurrentPage, p.TotalPages, p.TotalItems)

	case "get":
		if len(rest) != 1 {
			return fmt.Errorf("get needs exactly one ID")
		}
		id, err := uuid.Parse(rest[0])
		if err != nil {
			return model.InvalidArgument("malformed author id %q", rest[0])
		}
		a, err := svc.GetAuthor(ctx, id)
		if err != nil {
			return err
		}
		printAuthor(*a)

	case "add":
		if len(rest) < 2 || len(rest) > 3 {
			return fmt.Errorf("add needs FIRST LAST [COUNTRY]")
		}
		req := model.CreateAuthorRequest{FirstName: rest[0], LastName: rest[1]}
		if len(rest) == 3 {
			req.CountryID = rest[2]
		}
		a, err := svc.CreateAuthor(ctx, req)
		if err != nil {
			return err
		}
		printAuthor(*a)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	return nil
}

func printAuthor(a model.Author) {
	fmt.Printf("%s  %-3s  %s\n", a.ID, a.CountryID, strings.TrimSpace(a.FullName()))
}

// describe maps well-known failures to a short operator message
func describe(err error) string {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, model.ErrUnknownCountry):
		return "unknown country, run the seed command first"
	case errors.Is(err, model.ErrInvalidArgument):
		return "invalid input"
	case errors.Is(err, model.ErrAuthorNotFound):
		return "author not found"
	case errors.Is(err, context.DeadlineExceeded):
		return "operation timed out"
	case errors.As(err, &pgErr):
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return "referenced country does not exist"
		case "23505": // unique_violation
			return "author already exists"
		case "42P01": // undefined_table
			return "catalog tables missing, run the schema command first"
		}
		return "database error " + pgErr.Code
	default:
		return "command failed"
	}
}

var referenceCountries = []model.Country{
	{ID: "BE", Description: "Belgium"},
	{ID: "DE", Description: "Germany"},
	{ID: "FR", Description: "France"},
	{ID: "GB", Description: "United Kingdom"},
	{ID: "NL", Description: "Netherlands"},
	{ID: "US", Description: "United States"},
}
