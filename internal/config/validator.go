package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/Iron-Ham/windrose/internal/chart"
	"github.com/Iron-Ham/windrose/internal/logging"
	"github.com/Iron-Ham/windrose/internal/rose"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "chart.radius")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Image size bounds for render.width and render.height.
const (
	MinImageSize = 64
	MaxImageSize = 4096
)

// paletteNameRegex matches palette names, which double as file names.
var paletteNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	levels := logging.ValidLevels()
	for i, l := range levels {
		levels[i] = strings.ToLower(l)
	}
	return levels
}

// ValidFormats returns the list of valid render formats
func ValidFormats() []string {
	return chart.Formats()
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateData()...)
	errors = append(errors, c.validateChart()...)
	errors = append(errors, c.validateRender()...)
	errors = append(errors, c.validateServe()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateData validates the DataConfig
func (c *Config) validateData() []ValidationError {
	var errors []ValidationError

	if c.Data.MinMagnitude < 0 {
		errors = append(errors, ValidationError{
			Field:   "data.min_magnitude",
			Value:   c.Data.MinMagnitude,
			Message: "must be non-negative",
		})
	}
	if c.Data.MaxMagnitude <= c.Data.MinMagnitude {
		errors = append(errors, ValidationError{
			Field:   "data.max_magnitude",
			Value:   c.Data.MaxMagnitude,
			Message: fmt.Sprintf("must be greater than data.min_magnitude (%d)", c.Data.MinMagnitude),
		})
	}
	if c.Data.MaxMagnitude > rose.MaxMagnitudeLimit {
		errors = append(errors, ValidationError{
			Field:   "data.max_magnitude",
			Value:   c.Data.MaxMagnitude,
			Message: fmt.Sprintf("must be at most %d", rose.MaxMagnitudeLimit),
		})
	}

	return errors
}

// validateChart validates the ChartConfig
func (c *Config) validateChart() []ValidationError {
	var errors []ValidationError

	if !paletteNameRegex.MatchString(c.Chart.Palette) {
		errors = append(errors, ValidationError{
			Field:   "chart.palette",
			Value:   c.Chart.Palette,
			Message: "must start with a letter or digit and contain only letters, digits, '-' and '_'",
		})
	}

	if c.Chart.Radius < chart.MinRadius || c.Chart.Radius > chart.MaxRadius {
		errors = append(errors, ValidationError{
			Field:   "chart.radius",
			Value:   c.Chart.Radius,
			Message: fmt.Sprintf("must be between %d and %d", chart.MinRadius, chart.MaxRadius),
		})
	}

	for i, id := range c.Chart.HiddenLayers {
		if _, err := rose.ParseLayer(id); err != nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("chart.hidden_layers[%d]", i),
				Value:   id,
				Message: fmt.Sprintf("must be one of: %s", strings.Join(rose.LayerIDs(), ", ")),
			})
		}
	}

	return errors
}

// validateRender validates the RenderConfig
func (c *Config) validateRender() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidFormats(), c.Render.Format) {
		errors = append(errors, ValidationError{
			Field:   "render.format",
			Value:   c.Render.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidFormats(), ", ")),
		})
	}

	for _, dim := range []struct {
		field string
		value int
	}{
		{"render.width", c.Render.Width},
		{"render.height", c.Render.Height},
	} {
		if dim.value < MinImageSize || dim.value > MaxImageSize {
			errors = append(errors, ValidationError{
				Field:   dim.field,
				Value:   dim.value,
				Message: fmt.Sprintf("must be between %d and %d", MinImageSize, MaxImageSize),
			})
		}
	}

	return errors
}

// validateServe validates the ServeConfig
func (c *Config) validateServe() []ValidationError {
	var errors []ValidationError

	if c.Serve.Addr == "" {
		errors = append(errors, ValidationError{
			Field:   "serve.addr",
			Value:   c.Serve.Addr,
			Message: "must not be empty",
		})
	}
	if c.Serve.ShutdownTimeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "serve.shutdown_timeout",
			Value:   c.Serve.ShutdownTimeout,
			Message: "must be positive",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

// HiddenLayers parses chart.hidden_layers. Load has already validated the
// ids, so unknown ones are skipped.
func (c *Config) HiddenLayers() []rose.Layer {
	var layers []rose.Layer
	for _, id := range c.Chart.HiddenLayers {
		if l, err := rose.ParseLayer(id); err == nil {
			layers = append(layers, l)
		}
	}
	return layers
}
