package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// storeNamespace espacio UUIDv5: la misma ciudad+dirección produce siempre el mismo id,
// así regenerar la migración no duplica sucursales.
var storeNamespace = uuid.MustParse("5b7c2d4e-3f1a-4c8b-9e6d-0a1b2c3d4e5f")

type storeRow struct {
	ID          uuid.UUID
	City        string
	Address     string
	Phone       string
	Description string
	Latitude    *float64
	Longitude   *float64
}

type dayHours struct {
	Open, Close string
}

// decode pasa el contenido a UTF-8; lo que no es UTF-8 válido se lee como Windows-1251.
func decode(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return data, nil
	}
	out, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decodificar Windows-1251: %w", err)
	}
	return out, nil
}

func parseStores(raw []byte) ([]storeRow, error) {
	data, err := decode(raw)
	if err != nil {
		return nil, err
	}
	firstLine, _, _ := bytes.Cut(data, []byte("\n"))
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = ','
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		r.Comma = ';'
	}
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"city", "address"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("falta la columna %q", required)
		}
	}

	var out []storeRow
	seen := make(map[uuid.UUID]bool)
	line := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		s := storeRow{
			City:        get("city"),
			Address:     get("address"),
			Phone:       get("phone"),
			Description: get("description"),
		}
		if s.City == "" || s.Address == "" {
			continue
		}
		if s.Latitude, err = parseCoord(get("latitude"), 90); err != nil {
			return nil, fmt.Errorf("línea %d: latitude: %w", line, err)
		}
		if s.Longitude, err = parseCoord(get("longitude"), 180); err != nil {
			return nil, fmt.Errorf("línea %d: longitude: %w", line, err)
		}
		s.ID = uuid.NewSHA1(storeNamespace, []byte(strings.ToLower(s.City+"|"+s.Address)))
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out, nil
}

// parseCoord acepta coma decimal ("55,75").
func parseCoord(v string, limit float64) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64)
	if err != nil {
		return nil, err
	}
	if f < -limit || f > limit {
		return nil, fmt.Errorf("%v fuera de rango", f)
	}
	return &f, nil
}

func parseHours(v string) (*dayHours, error) {
	if v == "" {
		return nil, nil
	}
	open, closing, ok := strings.Cut(v, "-")
	if !ok {
		return nil, fmt.Errorf("horario %q: se espera HH:MM-HH:MM", v)
	}
	for _, t := range []string{open, closing} {
		if _, err := time.Parse("15:04", t); err != nil {
			return nil, fmt.Errorf("horario %q: %w", v, err)
		}
	}
	return &dayHours{Open: open, Close: closing}, nil
}

func writeMigration(w io.Writer, stores []storeRow, day *dayHours) error {
	var b strings.Builder
	b.WriteString("-- Sucursales generadas por cmd/seed_stores\n\n")
	b.WriteString("-- +goose Up\n")
	for _, s := range stores {
		fmt.Fprintf(&b,
			"INSERT INTO stores (id, city, address, phone, description, latitude, longitude)\n"+
				"VALUES ('%s', %s, %s, %s, %s, %s, %s)\n"+
				"ON CONFLICT (id) DO UPDATE SET phone = EXCLUDED.phone, description = EXCLUDED.description,\n"+
				"    latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude;\n",
			s.ID, quote(s.City), quote(s.Address), quote(s.Phone), quote(s.Description),
			coord(s.Latitude), coord(s.Longitude))
		if day == nil {
			continue
		}
		for d := 0; d < 7; d++ {
			fmt.Fprintf(&b,
				"INSERT INTO working_hours (store_id, day_of_week, opening_time, closing_time, is_closed)\n"+
					"VALUES ('%s', %d, '%s', '%s', FALSE) ON CONFLICT (store_id, day_of_week) DO NOTHING;\n",
				s.ID, d, day.Open, day.Close)
		}
	}

	b.WriteString("\n-- +goose Down\n")
	if len(stores) > 0 {
		ids := make([]string, 0, len(stores))
		for _, s := range stores {
			ids = append(ids, "'"+s.ID.String()+"'")
		}
		fmt.Fprintf(&b, "DELETE FROM stores WHERE id IN (%s);\n", strings.Join(ids, ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func coord(f *float64) string {
	if f == nil {
		return "NULL"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
