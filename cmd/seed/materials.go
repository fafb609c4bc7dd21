package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
)

// decoderFor envuelve r según el charset del archivo. Las planillas exportadas de sistemas
// legados de balanza suelen venir en ISO-8859-1 o Windows-1252.
func decoderFor(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(charset, "_", "-")) {
	case "", "utf-8", "utf8":
		return r, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("charset no soportado: %s", charset)
}

// readMaterials lee materias primas de un CSV separado por ';' con cabecera:
// nome;unidade;estoque_atual;estoque_minimo. Los números aceptan formato brasileño (1.234,5).
func readMaterials(r io.Reader, charset string) ([]dto.CreateRawMaterialRequest, error) {
	dec, err := decoderFor(r, charset)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(dec)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV sin filas de datos")
	}

	out := make([]dto.CreateRawMaterialRequest, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 4 {
			return nil, fmt.Errorf("línea %d: se esperaban 4 columnas", i+2)
		}
		stock, err := parseBRDecimal(row[2])
		if err != nil {
			return nil, fmt.Errorf("línea %d: estoque_atual: %w", i+2, err)
		}
		minimum, err := parseBRDecimal(row[3])
		if err != nil {
			return nil, fmt.Errorf("línea %d: estoque_minimo: %w", i+2, err)
		}
		out = append(out, dto.CreateRawMaterialRequest{
			Name:         strings.TrimSpace(row[0]),
			Unit:         strings.TrimSpace(row[1]),
			InitialStock: stock,
			MinimumStock: minimum,
		})
	}
	return out, nil
}

// thousandsGrouped reconoce enteros agrupados por miles sin parte decimal: "2.000", "12.500.000".
var thousandsGrouped = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// parseBRDecimal "1.234,50" → 1234.50 y "2.000" → 2000. Sin coma y fuera de ese patrón
// ("0.9"), el punto se toma como separador decimal.
func parseBRDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case thousandsGrouped.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	return decimal.NewFromString(s)
}
