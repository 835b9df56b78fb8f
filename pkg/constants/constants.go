// Package constants provides shared constants for the solarproposal application.
package constants

// Projection constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// ProjectionYears is the length of the long-term savings projection
	ProjectionYears = 5

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatPDF writes the rendered proposal PDF
	OutputFormatPDF = "pdf"

	// OutputFormatXLSX writes the proposal workbook
	OutputFormatXLSX = "xlsx"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultOutputDirectory is where generated proposal artifacts are written
	DefaultOutputDirectory = "media"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the webhook API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxInvoiceAmount is the largest invoice value accepted from callers
	MaxInvoiceAmount = 99999.99

	// MinCustomerNameLength is the shortest accepted customer name
	MinCustomerNameLength = 3

	// MaxCustomerNameLength is the longest accepted customer name
	MaxCustomerNameLength = 100

	// MinCustomerAddressLength is the shortest accepted customer address
	MinCustomerAddressLength = 10

	// MaxArtifactSlugLength caps the sanitized customer slug in file names
	MaxArtifactSlugLength = 50
)
