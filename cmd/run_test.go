//go:build !integration

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/export"
	"github.com/sells-group/leadgen-cli/internal/model"
)

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	err := writeCSVFile(path, func(f *os.File) error {
		return export.WriteCompanies(f, []model.CompanyRecord{
			{EntityID: "0123.456.789", Name: "Acme Software", Website: "https://acme.be"},
		})
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Acme Software")
	assert.Contains(t, string(data), "EntityNumber")
}

func TestWriteCSVFile_BadPath(t *testing.T) {
	err := writeCSVFile(filepath.Join(t.TempDir(), "missing", "out.csv"), func(f *os.File) error {
		return nil
	})
	assert.Error(t, err)
}
