package cli

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rushi-salon/salon/internal/app"
	"github.com/rushi-salon/salon/internal/auth"
	"github.com/rushi-salon/salon/internal/catalog"
	"github.com/rushi-salon/salon/internal/platform/db"
)

// Credentials of the account created on an empty store.
const (
	defaultAdminUser     = "admin"
	defaultAdminPassword = "admin123"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Services []catalogEntry `yaml:"services"`
}

type catalogEntry struct {
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	Description string `yaml:"description"`
}

// parseCatalog decodes a catalog file into create requests.
func parseCatalog(data []byte) ([]catalog.CreateServiceRequest, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	out := make([]catalog.CreateServiceRequest, 0, len(file.Services))
	for i, e := range file.Services {
		price, err := decimal.NewFromString(e.Price)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): price %q: %w", i+1, e.Name, e.Price, err)
		}
		out = append(out, catalog.CreateServiceRequest{Name: e.Name, Price: &price, Description: e.Description})
	}
	return out, nil
}

type adminEnsurer interface {
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

type serviceCreator interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, req catalog.CreateServiceRequest) (*catalog.Service, error)
}

// seed creates the default admin and catalog on an empty store. Existing
// users or services are left alone.
func seed(ctx context.Context, out io.Writer, users adminEnsurer, services serviceCreator, entries []catalog.CreateServiceRequest) error {
	created, err := users.EnsureAdmin(ctx, defaultAdminUser, defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		fmt.Fprintf(out, "Default admin created: %s / %s\n", defaultAdminUser, defaultAdminPassword)
	}

	n, err := services.Count(ctx)
	if err != nil {
		return fmt.Errorf("count services: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, req := range entries {
		if _, err := services.Create(ctx, req); err != nil {
			return fmt.Errorf("seed service %s: %w", req.Name, err)
		}
	}
	fmt.Fprintf(out, "Sample services added: %d\n", len(entries))
	return nil
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema, the default admin and the starter catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		data := defaultCatalog
		if path, _ := cmd.Flags().GetString("file"); path != "" {
			b, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read catalog: %w", err)
			}
			data = b
		}
		entries, err := parseCatalog(data)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		cfg, err := app.LoadStoreConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := db.EnsureSchema(ctx, pool); err != nil {
			return err
		}

		return seed(ctx, cmd.OutOrStdout(),
			auth.NewService(auth.NewRepository(pool)),
			catalog.NewManager(catalog.NewRepository(pool)),
			entries,
		)
	},
}

func init() {
	seedCmd.Flags().String("file", "", "YAML catalog to seed instead of the built-in one")
}
