package utils

import "fmt"

const (
	B  = 1
	KB = 1024 * B
	MB = 1024 * KB
	GB = 1024 * MB
	TB = 1024 * GB
)

var sizeUnits = []struct {
	size int64
	name string
}{
	{TB, "TB"},
	{GB, "GB"},
	{MB, "MB"},
	{KB, "KB"},
}

// FormatBytes renders a byte count with two decimals in the largest unit
// that fits. Negative counts render as "0 B".
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	for _, u := range sizeUnits {
		if n >= u.size {
			return fmt.Sprintf("%.2f %s", float64(n)/float64(u.size), u.name)
		}
	}
	return fmt.Sprintf("%d B", n)
}
