// seed_catalog genera el par de migraciones SQL que carga proveedores y productos iniciales
// a partir de un CSV exportado de la hoja de cálculo de la tienda (separador ';', Latin-1 o UTF-8).
//
// Formato de cada fila:
//
//	proveedor;<id>;<razón social>;<ruc>;<teléfono>;<email>;<dirección>
//	producto;<id>;<sku>;<nombre>;<precio>;<stock>;<stock mínimo>
//
// Uso: go run ./cmd/seed_catalog [-latin1] [ruta/catalogo.csv]
// Escribe: internal/infrastructure/postgres/migrations/000002_seed_catalog.{up,down}.sql
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type providerRow struct {
	id, businessName, taxID, phone, email, address string
}

type productRow struct {
	id, sku, name  string
	price          decimal.Decimal
	stock, minimum int
}

type catalog struct {
	providers []providerRow
	products  []productRow
}

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	flag.Parse()
	path := "catalogo.csv"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	cat, err := parseCatalog(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	dir := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations")
	up, down := cat.upSQL(), cat.downSQL()
	if err := os.WriteFile(filepath.Join(dir, "000002_seed_catalog.up.sql"), []byte(up), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir up: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(filepath.Join(dir, "000002_seed_catalog.down.sql"), []byte(down), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir down: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado en %s: %d proveedores, %d productos\n", dir, len(cat.providers), len(cat.products))
}

func parseCatalog(r io.Reader) (*catalog, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	cat := &catalog{}
	seen := make(map[string]bool)
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		for i := range rec {
			rec[i] = norm.NFC.String(strings.TrimSpace(rec[i]))
		}
		if len(rec) == 0 || rec[0] == "" || strings.HasPrefix(rec[0], "#") {
			continue
		}
		if len(rec) != 7 {
			return nil, fmt.Errorf("línea %d: se esperaban 7 columnas, hay %d", line, len(rec))
		}
		kind := strings.ToLower(rec[0])
		if seen[kind+"/"+rec[1]] {
			return nil, fmt.Errorf("línea %d: %s %q repetido", line, kind, rec[1])
		}
		seen[kind+"/"+rec[1]] = true

		switch kind {
		case "proveedor":
			cat.providers = append(cat.providers, providerRow{
				id: rec[1], businessName: rec[2], taxID: rec[3], phone: rec[4], email: rec[5], address: rec[6],
			})
		case "producto":
			p, err := parseProduct(rec)
			if err != nil {
				return nil, fmt.Errorf("línea %d: %w", line, err)
			}
			cat.products = append(cat.products, p)
		default:
			return nil, fmt.Errorf("línea %d: tipo de fila desconocido %q", line, rec[0])
		}
	}

	sort.Slice(cat.providers, func(i, j int) bool { return cat.providers[i].id < cat.providers[j].id })
	sort.Slice(cat.products, func(i, j int) bool { return cat.products[i].id < cat.products[j].id })
	return cat, nil
}

func parseProduct(rec []string) (productRow, error) {
	// Las hojas en español suelen exportar el precio con coma decimal.
	price, err := decimal.NewFromString(strings.ReplaceAll(rec[4], ",", "."))
	if err != nil || price.IsNegative() {
		return productRow{}, fmt.Errorf("precio inválido %q", rec[4])
	}
	stock, err := strconv.Atoi(rec[5])
	if err != nil || stock < 0 {
		return productRow{}, fmt.Errorf("stock inválido %q", rec[5])
	}
	minimum, err := strconv.Atoi(rec[6])
	if err != nil || minimum < 0 {
		return productRow{}, fmt.Errorf("stock mínimo inválido %q", rec[6])
	}
	return productRow{id: rec[1], sku: rec[2], name: rec[3], price: price.Round(2), stock: stock, minimum: minimum}, nil
}

func (c *catalog) upSQL() string {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial generado por cmd/seed_catalog\n\n")
	if len(c.providers) > 0 {
		b.WriteString("INSERT INTO providers (id, razon_social, ruc, telefono, email, direccion) VALUES\n")
		for i, p := range c.providers {
			fmt.Fprintf(&b, "  (%s, %s, %s, %s, %s, %s)%s\n",
				quote(p.id), quote(p.businessName), quote(p.taxID), quote(p.phone), quote(p.email), quote(p.address),
				sep(i, len(c.providers)))
		}
		b.WriteString("ON CONFLICT (id) DO UPDATE SET razon_social = EXCLUDED.razon_social, telefono = EXCLUDED.telefono,\n")
		b.WriteString("  email = EXCLUDED.email, direccion = EXCLUDED.direccion;\n\n")
	}
	if len(c.products) > 0 {
		b.WriteString("INSERT INTO products (id, sku, name, price, stock_quantity, stock_minimum) VALUES\n")
		for i, p := range c.products {
			fmt.Fprintf(&b, "  (%s, %s, %s, %s, %d, %d)%s\n",
				quote(p.id), quote(p.sku), quote(p.name), p.price.StringFixed(2), p.stock, p.minimum,
				sep(i, len(c.products)))
		}
		// El stock existente no se pisa: solo el libro de stock lo modifica.
		b.WriteString("ON CONFLICT (id) DO UPDATE SET sku = EXCLUDED.sku, name = EXCLUDED.name,\n")
		b.WriteString("  price = EXCLUDED.price, stock_minimum = EXCLUDED.stock_minimum;\n")
	}
	return b.String()
}

func (c *catalog) downSQL() string {
	var b strings.Builder
	if len(c.products) > 0 {
		ids := make([]string, len(c.products))
		for i, p := range c.products {
			ids[i] = quote(p.id)
		}
		fmt.Fprintf(&b, "DELETE FROM products WHERE id IN (%s);\n", strings.Join(ids, ", "))
	}
	if len(c.providers) > 0 {
		ids := make([]string, len(c.providers))
		for i, p := range c.providers {
			ids[i] = quote(p.id)
		}
		fmt.Fprintf(&b, "DELETE FROM providers WHERE id IN (%s);\n", strings.Join(ids, ", "))
	}
	return b.String()
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
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
