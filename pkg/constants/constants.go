// Package constants provides shared constants used throughout the inetmap codebase.
// This includes dataset defaults, render dimensions, file permissions and cache
// settings that should be consistent across the application.
package constants

import "time"

// Dataset constants describe the default shape of the two input files
const (
	// DefaultYearThreshold is the minimum year eligible for display
	DefaultYearThreshold = 2015

	// DefaultUsagePath is the default location of the usage CSV
	DefaultUsagePath = "data/share-of-individuals-using-the-internet.csv"

	// DefaultBoundaryPath is the default location of the boundary GeoJSON
	DefaultBoundaryPath = "data/countries.geojson"

	// UsageValueColumn is the default header of the usage percentage column
	UsageValueColumn = "Individuals using the Internet (% of population)"

	// UsageCodeColumn is the header of the country identifier column
	UsageCodeColumn = "Code"

	// UsageYearColumn is the header of the observation year column
	UsageYearColumn = "Year"

	// UsageEntityColumn is the header of the display name column
	UsageEntityColumn = "Entity"

	// BoundaryISOProperty is the GeoJSON property holding the country identifier
	BoundaryISOProperty = "ISO_A3"

	// BoundaryAdminProperty is the GeoJSON property holding the display name
	BoundaryAdminProperty = "ADMIN"

	// BoundaryNameProperty is the fallback display name property
	BoundaryNameProperty = "NAME"
)

// Render constants
const (
	// DefaultMapWidth is the default rendered map width in pixels
	DefaultMapWidth = 1200

	// DefaultMapHeight is the default rendered map height in pixels
	DefaultMapHeight = 640

	// MapTitleFormat formats the map title with the selected year
	MapTitleFormat = "Global Internet Usage by Country, %d"

	// MapCaptionFormat formats the map caption with the selected year
	MapCaptionFormat = "Percentage of individuals using the Internet, by country (%d)"

	// MapDescription is the short description shown with the map
	MapDescription = "Share of individuals using the Internet in each country. Data source: Our World in Data."
)

// Timeout constants define various timeout durations used in the application
const (
	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 2 * time.Minute

	// ShutdownTimeout bounds graceful shutdown of the server
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for memoized reconciliation results
	CacheTTL = 15 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 5 * time.Minute
)
