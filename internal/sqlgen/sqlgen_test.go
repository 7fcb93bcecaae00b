package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datasets-br/try-psql/internal/datapackage"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"name", "name"},
		{"ISO3166-1-Alpha-2", "iso3166_1_alpha_2"},
		{"Country-Codes", "country_codes"},
		{"already_snake", "already_snake"},
		{"--x--", "__x__"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeName(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeName(got), "normalizing twice must be stable")
			assert.NotContains(t, got, "-")
		})
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"data/Country-Codes.csv", "Country-Codes"},
		{"data/sub/dir/br-state-codes.csv", "br-state-codes"},
		{"plain.csv", "plain"},
		{"noext", "noext"},
		{"data/archive.tar.gz", "archive.tar"},
		{"https://example.org/files/city.csv", "city"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseName(tt.in))
		})
	}
}

func TestMapType(t *testing.T) {
	tests := []struct {
		tag  string
		want StorageType
	}{
		{"integer", TypeInteger},
		{"INTEGER", TypeInteger},
		{"boolean", TypeBoolean},
		{"Boolean", TypeBoolean},
		{"number", TypeNumeric},
		{"float", TypeFloat},
		{"string", TypeText},
		{"date", TypeText},
		{"year", TypeText},
		{"geopoint", TypeText},
		{"", TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, MapType(tt.tag))
		})
	}
}

func TestColumns(t *testing.T) {
	fields := []datapackage.Field{
		{Name: "Official-Name", Type: "string"},
		{Name: "ISO3166-1-numeric", Type: "Integer"},
		{Name: "area", Type: "number"},
	}

	cols := Columns(fields)
	assert.Equal(t, []Column{
		{Name: "official_name", Type: TypeText},
		{Name: "iso3166_1_numeric", Type: TypeInteger},
		{Name: "area", Type: TypeNumeric},
	}, cols)
	assert.Equal(t, "iso3166_1_numeric integer", cols[1].Definition())
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tmpcsv_country_codes", "tmpcsv_country_codes"},
		{"tmpcsc3", "tmpcsc3"},
		{"_private", "_private"},
		{"geoname id", `"geoname id"`},
		{"land locked developing countries (lldc)", `"land locked developing countries (lldc)"`},
		{"tmpcsv_country codes.v2", `"tmpcsv_country codes.v2"`},
		{"order", `"order"`},
		{"user", `"user"`},
		{"3d", `"3d"`},
		{`say "hi"`, `"say ""hi"""`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteIdentifier(tt.in))
		})
	}
}

func TestColumn_DefinitionQuotesName(t *testing.T) {
	cols := Columns([]datapackage.Field{
		{Name: "Geoname ID", Type: "integer"},
		{Name: "order", Type: "integer"},
		{Name: "ISO3166-1-numeric", Type: "integer"},
	})

	assert.Equal(t, `"geoname id" integer`, cols[0].Definition())
	assert.Equal(t, `"order" integer`, cols[1].Definition())
	assert.Equal(t, "iso3166_1_numeric integer", cols[2].Definition())
}
