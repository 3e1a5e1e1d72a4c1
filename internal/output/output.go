package output

import "sync"

var (
	globalPrinter = NewPrinter()
	globalMu      sync.RWMutex
)

// SetGlobalPrinter replaces the printer used by the package-level helpers.
func SetGlobalPrinter(printer *Printer) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalPrinter = printer
}

// GetGlobalPrinter returns the printer used by the package-level helpers.
func GetGlobalPrinter() *Printer {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalPrinter
}

// ConfigureGlobal replaces the global printer with one built from options.
func ConfigureGlobal(options ...Option) {
	SetGlobalPrinter(NewPrinter(options...))
}

// Info writes an informational line with the global printer.
func Info(text string) {
	GetGlobalPrinter().Info(text)
}

// Warning writes a warning line with the global printer.
func Warning(text string) {
	GetGlobalPrinter().Warning(text)
}

// Error writes an error line with the global printer.
func Error(text string) {
	GetGlobalPrinter().Error(text)
}
