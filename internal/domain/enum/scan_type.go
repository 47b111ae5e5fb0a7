package enum

// ScanType distinguishes barcode reads from image captures. Barcode scans
// are deduplicated by value; image captures are always independent.
type ScanType string

const (
	ScanBarcode ScanType = "barcode"
	ScanImage   ScanType = "image"
)

// Valid reports whether the scan type is one of the accepted values.
func (s ScanType) Valid() bool {
	return s == ScanBarcode || s == ScanImage
}

func (s ScanType) String() string {
	return string(s)
}
