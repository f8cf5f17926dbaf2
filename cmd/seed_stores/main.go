// seed_stores genera una migración goose con las sucursales de un CSV.
//
// Uso: go run ./cmd/seed_stores [ruta/stores.csv] --hours 09:00-21:00
// El CSV puede venir en UTF-8 o Windows-1251, separado por ";" o ",", con cabecera
// city;address;phone;description;latitude;longitude (las cuatro últimas opcionales).
// Escribe por defecto: internal/infrastructure/postgres/migrations/00002_seed_stores.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		out   string
		hours string
	)
	cmd := &cobra.Command{
		Use:           "seed_stores [stores.csv]",
		Short:         "Genera la migración SQL de sucursales a partir de un CSV",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			in := "stores.csv"
			if len(args) == 1 {
				in = args[0]
			}
			if out == "" {
				out = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "00002_seed_stores.sql")
			}
			return run(in, out, hours)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "archivo SQL de salida")
	cmd.Flags().StringVar(&hours, "hours", "", "horario diario por defecto HH:MM-HH:MM (vacío = sin horario)")
	return cmd
}

func run(in, out, hours string) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("leer CSV: %w", err)
	}
	stores, err := parseStores(data)
	if err != nil {
		return err
	}
	day, err := parseHours(hours)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("crear archivo: %w", err)
	}
	defer f.Close()
	if err := writeMigration(f, stores, day); err != nil {
		return fmt.Errorf("escribir SQL: %w", err)
	}
	fmt.Printf("Generado %s: %d sucursales\n", out, len(stores))
	return nil
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
