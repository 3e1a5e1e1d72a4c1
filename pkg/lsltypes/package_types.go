package lsltypes

// Well-known package names.
const (
	PackageTensor = "tensor"
	PackagePlot   = "plot"
	PackageData   = "data"
)

// PackageHandle is an opaque capability bundle returned by a package fetcher.
// The interpreter never calls into a bundle's capabilities itself; it only
// checks that the bundle was resolved before a command that depends on it.
type PackageHandle struct {
	Name         string   `json:"name" yaml:"name"`
	Identifier   string   `json:"identifier" yaml:"identifier"`
	Version      string   `json:"version,omitempty" yaml:"version,omitempty"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
}

// HasCapability reports whether the bundle advertises capability.
func (h *PackageHandle) HasCapability(capability string) bool {
	for _, c := range h.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}
