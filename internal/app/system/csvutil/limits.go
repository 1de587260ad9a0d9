// internal/app/system/csvutil/limits.go
package csvutil

// MaxRows caps one export.
const MaxRows = 50000
