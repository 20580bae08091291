package enums

import "fmt"

// PackageType describes how a catalog item is packaged on the shelf.
type PackageType string

const (
	PackageTypeSaco    PackageType = "saco"
	PackageTypePacote  PackageType = "pacote"
	PackageTypeLata    PackageType = "lata"
	PackageTypeCaixa   PackageType = "caixa"
	PackageTypeBandeja PackageType = "bandeja"
	PackageTypeGarrafa PackageType = "garrafa"
	PackageTypeOutro   PackageType = "outro"
)

var validPackageTypes = []PackageType{
	PackageTypeSaco,
	PackageTypePacote,
	PackageTypeLata,
	PackageTypeCaixa,
	PackageTypeBandeja,
	PackageTypeGarrafa,
	PackageTypeOutro,
}

// IsValid reports whether the value matches the canonical package type enum.
func (p PackageType) IsValid() bool {
	for _, candidate := range validPackageTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePackageType converts the raw string to PackageType.
func ParsePackageType(value string) (PackageType, error) {
	for _, candidate := range validPackageTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid package type %q", value)
}
