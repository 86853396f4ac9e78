package store

import (
	"fmt"
	"os"

	"gnosis/pkg/sheet"

	"github.com/pelletier/go-toml/v2"
)

// Backends for the statistics grid.
const (
	BackendGoogle = "google"
	BackendExcel  = "excel"
)

// SheetConfig identifies the spreadsheet holding the statistics and how
// to reach it.
type SheetConfig struct {
	Backend string
	// Google backend
	CredentialsPath string
	SpreadsheetID   string
	// Excel backend
	WorkbookPath string
	// Worksheet name, shared by both backends
	SheetName string
}

type configStore struct {
	ListenAddress string
	Sheet         SheetConfig
}

type Config struct {
	Filename string
	Store    configStore
}

// Save the current config out to a toml file.
func (c *Config) Save() error {
	b, err := toml.Marshal(c.Store)
	if err != nil {
		return err
	}
	return os.WriteFile(c.Filename, b, 0644)
}

// Load the current config from a toml file.
func (c *Config) Load() error {
	b, err := os.ReadFile(c.Filename)
	if err != nil {
		return err
	}
	return toml.Unmarshal(b, &c.Store)
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	switch c.Store.Sheet.Backend {
	case BackendGoogle:
		if c.Store.Sheet.SpreadsheetID == "" {
			return fmt.Errorf("google backend requires a SpreadsheetID")
		}
		if c.Store.Sheet.CredentialsPath == "" {
			return fmt.Errorf("google backend requires a CredentialsPath")
		}
	case BackendExcel:
		if c.Store.Sheet.WorkbookPath == "" {
			return fmt.Errorf("excel backend requires a WorkbookPath")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Store.Sheet.Backend)
	}
	return nil
}

// OpenSheet builds the configured Sheet backend. The returned save
// function persists local-workbook changes; it is a no-op for remote
// backends.
func (c *Config) OpenSheet() (sheet.Sheet, func() error, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	sc := c.Store.Sheet
	if sc.Backend == BackendExcel {
		s, err := sheet.OpenExcelSheet(sc.WorkbookPath, sc.SheetName)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Save, nil
	}
	s, err := sheet.NewGoogleSheet(sc.CredentialsPath, sc.SpreadsheetID, sc.SheetName)
	if err != nil {
		return nil, nil, err
	}
	return s, func() error { return nil }, nil
}

func NewDatastore(filename string) (*Config, error) {
	c := &Config{
		Filename: filename,
	}
	if err := c.Load(); err != nil {
		if os.IsNotExist(err) {
			if err := c.Save(); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	// Set some defaults
	if c.Store.ListenAddress == "" {
		c.Store.ListenAddress = ":80"
	}
	if c.Store.Sheet.Backend == "" {
		c.Store.Sheet.Backend = BackendGoogle
	}
	if c.Store.Sheet.SheetName == "" {
		c.Store.Sheet.SheetName = "Sheet1"
	}
	return c, nil
}
