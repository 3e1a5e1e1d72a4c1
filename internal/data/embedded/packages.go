// Package embedded provides access to data files compiled into the binary.
package embedded

import _ "embed"

// PackageRegistryData contains the embedded default package registry YAML.
//
//go:embed packages.yaml
var PackageRegistryData []byte
