package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const sample = `# tipo;id;...
producto;p2;GAL-01;Galletas de soda;2,50;40;10
proveedor;prov-1;Distribuidora O'Higgins SAC;20123456789;014567890;ventas@ohiggins.pe;Av. Perú 123
producto;p1;GAS-500;Gaseosa 500ml;3.00;120;24
`

func TestParseCatalog(t *testing.T) {
	cat, err := parseCatalog(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, cat.providers, 1)
	require.Len(t, cat.products, 2)
	assert.Equal(t, "p1", cat.products[0].id)
	assert.Equal(t, "2.50", cat.products[1].price.StringFixed(2))
	assert.Equal(t, 10, cat.products[1].minimum)

	up := cat.upSQL()
	assert.Contains(t, up, "'Distribuidora O''Higgins SAC'")
	assert.Contains(t, up, "('p1', 'GAS-500', 'Gaseosa 500ml', 3.00, 120, 24),")
	assert.NotContains(t, up, "stock_quantity = EXCLUDED")

	down := cat.downSQL()
	assert.Contains(t, down, "DELETE FROM products WHERE id IN ('p1', 'p2');")
	assert.Contains(t, down, "DELETE FROM providers WHERE id IN ('prov-1');")
}

func TestParseCatalog_Latin1(t *testing.T) {
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, charmap.ISO8859_1.NewEncoder())
	_, err := w.Write([]byte("producto;p9;AZU-1;Azúcar rubia;4.20;10;2\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	cat, err := parseCatalog(transform.NewReader(&buf, charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, cat.products, 1)
	assert.Equal(t, "Azúcar rubia", cat.products[0].name)
}

func TestParseCatalog_Errores(t *testing.T) {
	cases := map[string]string{
		"columnas":  "producto;p1;SKU;Nombre;1.00;1\n",
		"precio":    "producto;p1;SKU;Nombre;abc;1;0\n",
		"stock":     "producto;p1;SKU;Nombre;1.00;-1;0\n",
		"tipo":      "cliente;c1;a;b;c;d;e\n",
		"duplicado": "producto;p1;A;N;1;1;0\nproducto;p1;B;M;1;1;0\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseCatalog(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}
