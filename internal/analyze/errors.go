package analyze

import "fmt"

// DimensionMismatchError is returned when the expected and actual buffers do
// not share identical dimensions. The engine never resizes.
type DimensionMismatchError struct {
	ExpectedWidth  int
	ExpectedHeight int
	ActualWidth    int
	ActualHeight   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("image dimensions do not match: expected %dx%d, actual %dx%d",
		e.ExpectedWidth, e.ExpectedHeight, e.ActualWidth, e.ActualHeight)
}

// InvalidBufferError is returned when a buffer is nil or its sample length is
// inconsistent with width*height*4.
type InvalidBufferError struct {
	Name   string
	Width  int
	Height int
	Length int
}

func (e *InvalidBufferError) Error() string {
	return fmt.Sprintf("invalid %s buffer: %dx%d with %d samples, want %d",
		e.Name, e.Width, e.Height, e.Length, e.Width*e.Height*4)
}

// InvalidConfigurationError is returned when a configuration value is outside
// its documented range. Checked before any pixel work begins.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}
