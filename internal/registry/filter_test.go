package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultRules() FilterRules {
	return FilterRules{
		NaceVersion:     2008,
		IncludePrefixes: []string{"582", "62", "63"},
		ExcludePrefixes: []string{"0", "1", "2", "681", "682"},
	}
}

func TestFilterEntities(t *testing.T) {
	tests := []struct {
		name string
		rows []ActivityRow
		want []string
	}{
		{
			name: "included prefix only is kept",
			rows: []ActivityRow{
				{EntityNumber: "BE1", NaceVersion: 2008, NaceCode: "62010"},
			},
			want: []string{"BE1"},
		},
		{
			name: "included plus excluded prefix is dropped",
			rows: []ActivityRow{
				{EntityNumber: "BE1", NaceVersion: 2008, NaceCode: "62010"},
				{EntityNumber: "BE1", NaceVersion: 2008, NaceCode: "01110"},
			},
			want: nil,
		},
		{
			name: "matching codes under wrong scheme version are ignored",
			rows: []ActivityRow{
				{EntityNumber: "BE1", NaceVersion: 2003, NaceCode: "62010"},
			},
			want: nil,
		},
		{
			name: "publishing prefix 582 is included",
			rows: []ActivityRow{
				{EntityNumber: "BE1", NaceVersion: 2008, NaceCode: "58290"},
			},
			want: []string{"BE1"},
		},
		{
			name: "real-estate prefix 681 is excluded even with tech code",
			rows: []ActivityRow{
				{EntityNumber: "BE1", NaceVersion: 2008, NaceCode: "63110"},
				{EntityNumber: "BE1", NaceVersion: 2008, NaceCode: "68100"},
			},
			want: nil,
		},
		{
			name: "no rows under required version is vacuously excluded",
			rows: []ActivityRow{
				{EntityNumber: "BE1", NaceVersion: 2003, NaceCode: "01110"},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEntities(tt.rows, defaultRules())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterEntitiesOrderAndDedup(t *testing.T) {
	rows := []ActivityRow{
		{EntityNumber: "BE2", NaceVersion: 2008, NaceCode: "62010"},
		{EntityNumber: "BE1", NaceVersion: 2008, NaceCode: "63120"},
		{EntityNumber: "BE2", NaceVersion: 2008, NaceCode: "62020"},
		{EntityNumber: "BE3", NaceVersion: 2008, NaceCode: "41000"},
		{EntityNumber: "BE4", NaceVersion: 2008, NaceCode: "62090"},
	}

	got := FilterEntities(rows, defaultRules())
	assert.Equal(t, []string{"BE2", "BE1", "BE4"}, got)
}
