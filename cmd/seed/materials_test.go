package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/concretera-erp/internal/application/auth"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
	"github.com/jhoicas/concretera-erp/internal/infrastructure/memory"
	"github.com/jhoicas/concretera-erp/pkg/logger"
)

const planilla = "nome;unidade;estoque_atual;estoque_minimo\n" +
	"cimento;kg;12.500,5;2.000\n" +
	"água;l;30000;5000\n"

func latin1(t *testing.T, s string) io.Reader {
	t.Helper()
	b, err := charmap.ISO8859_1.NewEncoder().String(s)
	require.NoError(t, err)
	return bytes.NewReader([]byte(b))
}

func TestReadMaterials_Latin1(t *testing.T) {
	got, err := readMaterials(latin1(t, planilla), "iso-8859-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "cimento", got[0].Name)
	assert.True(t, got[0].InitialStock.Equal(decimal.RequireFromString("12500.5")))
	assert.True(t, got[0].MinimumStock.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, "água", got[1].Name, "el acento debe sobrevivir a la conversión")
}

func TestReadMaterials_Errores(t *testing.T) {
	_, err := readMaterials(strings.NewReader(planilla), "ebcdic")
	assert.ErrorContains(t, err, "charset no soportado")

	_, err = readMaterials(strings.NewReader("nome;unidade;estoque_atual;estoque_minimo\n"), "utf-8")
	assert.ErrorContains(t, err, "sin filas")

	_, err = readMaterials(strings.NewReader("h1;h2;h3;h4\ncimento;kg;abc;1\n"), "utf-8")
	assert.ErrorContains(t, err, "línea 2")
}

func TestParseBRDecimal(t *testing.T) {
	cases := map[string]string{
		"1.234,50":  "1234.5",
		"0,8":       "0.8",
		"180":       "180",
		"0.9":       "0.9",
		"2.000":     "2000",
		"12.500":    "12500",
		"1.250.000": "1250000",
		"12.5":      "12.5",
	}
	for in, want := range cases {
		got, err := parseBRDecimal(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s → %s, se obtuvo %s", in, want, got)
	}
}

func TestSeed_CargaOrganizacionCompleta(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repos := store.Repos()
	var out bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Level: "info", Output: &out})

	err := seed(ctx, store, repos, seedInput{
		OrgName:   "Concreteira Teste",
		Email:     "admin@teste.local",
		Password:  "admin12345",
		Materials: defaultMaterials,
		JWT:       auth.JWTConfig{Secret: "s", ExpMinutes: 5, Issuer: "seed-test"},
	}, log)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"recipe_items":5`)

	orgs, err := repos.Organizations.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, orgs, 1)

	materials, err := repos.RawMaterials.List(ctx, orgs[0].ID, repository.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, materials, len(defaultMaterials))
}

func TestSeed_RecetaParcialSiFaltanMateriales(t *testing.T) {
	store := memory.New()
	var out bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Level: "info", Output: &out})

	err := seed(context.Background(), store, store.Repos(), seedInput{
		OrgName:   "Parcial",
		Email:     "admin@parcial.local",
		Password:  "admin12345",
		Materials: defaultMaterials[:1],
		JWT:       auth.JWTConfig{Secret: "s", ExpMinutes: 5},
	}, log)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "se omite")
	assert.Contains(t, out.String(), `"recipe_items":1`)
}
