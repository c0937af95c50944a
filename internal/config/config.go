// Package config loads process configuration from the environment. The
// sender identity it carries is converted once into an explicit model.Sender
// and passed into every serializer call; nothing downstream reads the
// environment.
package config

import (
	"fmt"
	"os"

	"github.com/rezonia/fiscaldoc/internal/fiscalcode"
	"github.com/rezonia/fiscaldoc/internal/model"
)

type Config struct {
	// Company fiscal identity (the document sender)
	CompanyFiscalCode string
	CompanyName       string
	CompanyVATNumber  string
	CompanyAddress    string
	CompanyPostalCode string
	CompanyCity       string
	CompanyProvince   string
	CompanyCountry    string

	// FatturaPA transmission identity
	TransmitterCountry string
	TransmitterCode    string
	CodiceDestinatario string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		CompanyFiscalCode: getEnv("COMPANY_FISCAL_CODE", ""),
		CompanyName:       getEnv("COMPANY_NAME", ""),
		CompanyVATNumber:  getEnv("COMPANY_VAT_NUMBER", ""),
		CompanyAddress:    getEnv("COMPANY_ADDRESS", ""),
		CompanyPostalCode: getEnv("COMPANY_POSTAL_CODE", ""),
		CompanyCity:       getEnv("COMPANY_CITY", ""),
		CompanyProvince:   getEnv("COMPANY_PROVINCE", ""),
		CompanyCountry:    getEnv("COMPANY_COUNTRY", "IT"),

		TransmitterCountry: getEnv("FATTURAPA_TRANSMITTER_COUNTRY", "IT"),
		TransmitterCode:    getEnv("FATTURAPA_TRANSMITTER_CODE", ""),
		CodiceDestinatario: getEnv("FATTURAPA_CODICE_DESTINATARIO", "0000000"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stdout"),
	}

	return config, nil
}

// Validate checks the fields every document needs from the sender side
func (c *Config) Validate() error {
	if c.CompanyFiscalCode == "" {
		return fmt.Errorf("COMPANY_FISCAL_CODE is required")
	}
	if c.CompanyName == "" {
		return fmt.Errorf("COMPANY_NAME is required")
	}
	if len(c.CompanyFiscalCode) == 16 && !fiscalcode.Validate(c.CompanyFiscalCode) {
		return fmt.Errorf("COMPANY_FISCAL_CODE %q fails checksum validation", c.CompanyFiscalCode)
	}
	return nil
}

// Sender builds the explicit sender identity passed into serializer calls
func (c *Config) Sender() model.Sender {
	transmitterCode := c.TransmitterCode
	if transmitterCode == "" {
		transmitterCode = c.CompanyFiscalCode
	}
	return model.Sender{
		FiscalCode: c.CompanyFiscalCode,
		Name:       c.CompanyName,
		VATNumber:  c.CompanyVATNumber,
		Address:    c.CompanyAddress,
		PostalCode: c.CompanyPostalCode,
		City:       c.CompanyCity,
		Province:   c.CompanyProvince,
		Country:    c.CompanyCountry,

		TransmitterCountry: c.TransmitterCountry,
		TransmitterCode:    transmitterCode,
		CodiceDestinatario: c.CodiceDestinatario,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
