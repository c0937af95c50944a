package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/fiscaldoc/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "IT", cfg.CompanyCountry)
	assert.Equal(t, "0000000", cfg.CodiceDestinatario)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("COMPANY_FISCAL_CODE", "04587160588")
	t.Setenv("COMPANY_NAME", "Spettacoli Roma SRL")
	t.Setenv("FATTURAPA_CODICE_DESTINATARIO", "ABC1234")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "04587160588", cfg.CompanyFiscalCode)
	assert.Equal(t, "Spettacoli Roma SRL", cfg.CompanyName)
	assert.Equal(t, "ABC1234", cfg.CodiceDestinatario)
	require.NoError(t, cfg.Validate())
}

func TestValidate_RequiresIdentity(t *testing.T) {
	cfg := &config.Config{}
	assert.Error(t, cfg.Validate())

	cfg.CompanyFiscalCode = "04587160588"
	assert.Error(t, cfg.Validate(), "name still missing")

	cfg.CompanyName = "Spettacoli Roma SRL"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ChecksPersonalFiscalCode(t *testing.T) {
	// a sole proprietor uses the personal 16-character code, which must
	// pass checksum validation
	cfg := &config.Config{
		CompanyFiscalCode: "RSSMRA80A01H501X",
		CompanyName:       "Mario Rossi",
	}
	assert.Error(t, cfg.Validate())

	cfg.CompanyFiscalCode = "RSSMRA80A01H501U"
	assert.NoError(t, cfg.Validate())
}

func TestSender_TransmitterDefaultsToCompanyCode(t *testing.T) {
	cfg := &config.Config{
		CompanyFiscalCode:  "04587160588",
		CompanyName:        "Spettacoli Roma SRL",
		TransmitterCountry: "IT",
	}

	sender := cfg.Sender()
	assert.Equal(t, "04587160588", sender.TransmitterCode)
	assert.Equal(t, "IT", sender.TransmitterCountry)
}
